package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bookpay/internal/domain"
	"bookpay/pkg/e"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type DB interface {
	CreateOrder(ctx context.Context, order domain.Order) error
	GetByTxnRef(ctx context.Context, txnRef string) (domain.Order, error)
	ConfirmPayment(ctx context.Context, txnRef string, paymentStatus domain.PaymentStatus, status domain.OrderStatus, transactionNo, bankCode string) error
}

type Cache interface {
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string, value *domain.Order) (string, error)
	Delete(ctx context.Context, key string) error
}

type Gateway interface {
	BuildPaymentURL(req domain.PaymentRequest) (string, error)
	VerifyCallback(params map[string]string) domain.VerificationResult
}

var (
	ipnRequestsCounter         prometheus.Counter
	ipnInvalidSignatureCounter prometheus.Counter
	ipnAmountMismatchCounter   prometheus.Counter
	ipnDuplicateCounter        prometheus.Counter
	ipnConfirmedCounter        prometheus.Counter
)

func init() {
	ipnRequestsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vnpay_ipn_requests_total",
		Help: "Total number of received IPN callbacks",
	})

	ipnInvalidSignatureCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vnpay_ipn_invalid_signature_total",
		Help: "Total number of IPN callbacks rejected for a bad signature",
	})

	ipnAmountMismatchCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vnpay_ipn_amount_mismatch_total",
		Help: "Total number of IPN callbacks rejected for an amount mismatch",
	})

	ipnDuplicateCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vnpay_ipn_duplicate_total",
		Help: "Total number of IPN redeliveries short-circuited by the idempotency guard",
	})

	ipnConfirmedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vnpay_ipn_confirmed_total",
		Help: "Total number of payment transitions applied from IPN callbacks",
	})
}

const orderCacheTTL = 10 * time.Minute

type Service struct {
	db      DB
	cache   Cache
	gateway Gateway
	logger  *slog.Logger
}

func NewService(logger *slog.Logger, db DB, cache Cache, gateway Gateway) *Service {
	return &Service{
		db:      db,
		cache:   cache,
		gateway: gateway,
		logger:  logger,
	}
}

func orderCacheKey(txnRef string) string {
	return fmt.Sprintf("order:%s", txnRef)
}

func (s *Service) CreateOrder(ctx context.Context, order domain.Order) error {
	order.Status = domain.OrderStatusCreated
	order.PaymentStatus = domain.PaymentStatusPending

	if err := s.db.CreateOrder(ctx, order); err != nil {
		s.logger.Error("failed to create order", slog.String("txn_ref", order.TxnRef), slog.String("error", err.Error()))
		return e.Wrap("service.CreateOrder", err)
	}

	return nil
}

func (s *Service) GetByTxnRef(ctx context.Context, txnRef string) (domain.Order, error) {
	if s.cache != nil {
		var cached domain.Order
		if _, err := s.cache.Get(ctx, orderCacheKey(txnRef), &cached); err == nil {
			return cached, nil
		}
	}

	order, err := s.db.GetByTxnRef(ctx, txnRef)
	if err != nil {
		if !errors.Is(err, e.ErrNotFound) {
			s.logger.Error("failed to get order", slog.String("txn_ref", txnRef), slog.String("error", err.Error()))
		}
		return domain.Order{}, e.Wrap("service.GetByTxnRef", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, orderCacheKey(txnRef), order, orderCacheTTL); err != nil {
			s.logger.Warn("failed to cache order", slog.String("txn_ref", txnRef), slog.String("error", err.Error()))
		}
	}

	return order, nil
}

// CreatePayment builds the gateway redirect URL for a pending order. The
// amount is taken from the stored order, never from the caller.
func (s *Service) CreatePayment(ctx context.Context, txnRef, clientIP, bankCode, locale string) (string, error) {
	order, err := s.db.GetByTxnRef(ctx, txnRef)
	if err != nil {
		return "", e.Wrap("service.CreatePayment", err)
	}

	if order.PaymentStatus != domain.PaymentStatusPending {
		return "", e.Wrap("service.CreatePayment", e.ErrAlreadyProcessed)
	}

	paymentURL, err := s.gateway.BuildPaymentURL(domain.PaymentRequest{
		TxnRef:    order.TxnRef,
		Amount:    order.TotalAmount,
		OrderInfo: fmt.Sprintf("Thanh toan don hang sach %s", order.TxnRef),
		ClientIP:  clientIP,
		Locale:    locale,
		BankCode:  bankCode,
	})
	if err != nil {
		s.logger.Error("failed to build payment url", slog.String("txn_ref", txnRef), slog.String("error", err.Error()))
		return "", e.Wrap("service.CreatePayment", err)
	}

	return paymentURL, nil
}

// HandleReturn validates the browser-redirect callback. It is advisory only:
// it never writes order state, which belongs to HandleIPN.
func (s *Service) HandleReturn(ctx context.Context, params map[string]string) domain.VerificationResult {
	result := s.gateway.VerifyCallback(params)
	if !result.Valid {
		s.logger.Warn("return callback with invalid signature", slog.String("txn_ref", params["vnp_TxnRef"]))
		return result
	}

	s.logger.Info("return callback verified",
		slog.String("txn_ref", result.TxnRef),
		slog.String("response_code", result.ResponseCode),
		slog.Bool("is_success", result.IsSuccess),
	)
	return result
}

// HandleIPN is the authoritative handler for the gateway's server-to-server
// notification. It converts the whole failure taxonomy into the gateway's
// response-code vocabulary; the gateway redelivers on any code other than
// "00" and "02", and the PENDING guard makes redelivery safe.
func (s *Service) HandleIPN(ctx context.Context, params map[string]string) domain.IPNResponse {
	ipnRequestsCounter.Inc()

	if params["vnp_TxnRef"] == "" || params["vnp_Amount"] == "" || params["vnp_SecureHash"] == "" {
		return domain.IPNResponse{RspCode: domain.RspUnknownError, Message: "Missing required fields"}
	}

	result := s.gateway.VerifyCallback(params)
	if !result.Valid {
		ipnInvalidSignatureCounter.Inc()
		s.logger.Warn("ipn callback with invalid signature", slog.String("txn_ref", params["vnp_TxnRef"]))
		return domain.IPNResponse{RspCode: domain.RspInvalidSignature, Message: "Invalid signature"}
	}

	// Authoritative path reads the store directly, never the cache.
	order, err := s.db.GetByTxnRef(ctx, result.TxnRef)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			s.logger.Warn("ipn for unknown order", slog.String("txn_ref", result.TxnRef))
			return domain.IPNResponse{RspCode: domain.RspOrderNotFound, Message: "Order not found"}
		}
		s.logger.Error("ipn order lookup failed", slog.String("txn_ref", result.TxnRef), slog.String("error", err.Error()))
		return domain.IPNResponse{RspCode: domain.RspUnknownError, Message: "Unknown error"}
	}

	// The signature covers the received amount, not the stored one; a valid
	// signature is not enough.
	if order.TotalAmount != result.Amount {
		ipnAmountMismatchCounter.Inc()
		s.logger.Warn("ipn amount mismatch",
			slog.String("txn_ref", result.TxnRef),
			slog.Int64("stored", order.TotalAmount),
			slog.Int64("received", result.Amount),
		)
		return domain.IPNResponse{RspCode: domain.RspInvalidAmount, Message: "Invalid amount"}
	}

	if order.PaymentStatus != domain.PaymentStatusPending {
		ipnDuplicateCounter.Inc()
		return domain.IPNResponse{RspCode: domain.RspAlreadyConfirmed, Message: "Order already confirmed"}
	}

	paymentStatus := domain.PaymentStatusCompleted
	status := domain.OrderStatusConfirmed
	if !result.IsSuccess {
		paymentStatus = domain.PaymentStatusFailed
		status = domain.OrderStatusCancelled
	}

	if err := s.db.ConfirmPayment(ctx, result.TxnRef, paymentStatus, status, result.TransactionNo, result.BankCode); err != nil {
		if errors.Is(err, e.ErrAlreadyProcessed) {
			// Lost the race against a concurrent delivery.
			ipnDuplicateCounter.Inc()
			return domain.IPNResponse{RspCode: domain.RspAlreadyConfirmed, Message: "Order already confirmed"}
		}
		s.logger.Error("ipn payment transition failed", slog.String("txn_ref", result.TxnRef), slog.String("error", err.Error()))
		return domain.IPNResponse{RspCode: domain.RspUnknownError, Message: "Unknown error"}
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, orderCacheKey(result.TxnRef)); err != nil {
			s.logger.Warn("failed to invalidate order cache", slog.String("txn_ref", result.TxnRef), slog.String("error", err.Error()))
		}
	}

	ipnConfirmedCounter.Inc()
	s.logger.Info("ipn processed",
		slog.String("txn_ref", result.TxnRef),
		slog.String("payment_status", string(paymentStatus)),
		slog.String("response_code", result.ResponseCode),
	)
	return domain.IPNResponse{RspCode: domain.RspSuccess, Message: "Confirm Success"}
}
