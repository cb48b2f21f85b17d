package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"bookpay/internal/domain"
	"bookpay/internal/vnpay"
	"bookpay/pkg/e"

	"github.com/gin-gonic/gin"
)

// @title BookPay App Api
// @version 1
//
//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type OrderService interface {
	CreateOrder(ctx context.Context, order domain.Order) error
	GetByTxnRef(ctx context.Context, txnRef string) (domain.Order, error)
	CreatePayment(ctx context.Context, txnRef, clientIP, bankCode, locale string) (string, error)
	HandleReturn(ctx context.Context, params map[string]string) domain.VerificationResult
	HandleIPN(ctx context.Context, params map[string]string) domain.IPNResponse
}

type Handler struct {
	ordSer OrderService
	logger *slog.Logger
	// Storefront page the gateway return is forwarded to.
	frontendResultURL string
}

func NewHandler(logger *slog.Logger, orderService OrderService, frontendResultURL string) *Handler {
	return &Handler{
		ordSer:            orderService,
		logger:            logger,
		frontendResultURL: frontendResultURL,
	}
}

type createPaymentRequest struct {
	TxnRef   string `json:"txn_ref" binding:"required"`
	BankCode string `json:"bank_code"`
	Locale   string `json:"locale"`
}

// PostOrder godoc
// @Summary Create a new order
// @Description Register a checkout order awaiting payment.
// @ID create-order
// @Accept  json
// @Produce  json
// @Param order body domain.Order true "Order object to be created"
// @Success 200 {object} map[string]interface{} "Successful operation"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create order"
// @Router /orders [post]
func (h *Handler) PostOrder(c *gin.Context) {
	var o domain.Order
	if err := c.Bind(&o); err != nil {
		h.logger.Error("failed to bind data", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ordSer.CreateOrder(c, o); err != nil {
		h.logger.Error("failed to create order", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"txn_ref": o.TxnRef})
}

// GetOrder godoc
// @Summary Get order by transaction reference
// @Description Get details of an order by its transaction reference.
// @ID get-order-by-txn-ref
// @Produce  json
// @Param txnRef path string true "Transaction reference"
// @Success 200 {object} domain.Order "Successful operation"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /orders/{txnRef} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	txnRef := c.Param("txnRef")

	order, err := h.ordSer.GetByTxnRef(c, txnRef)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": e.ErrNotFound.Error()})
			return
		}
		h.logger.Error("failed to get order", slog.String("txn_ref", txnRef), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to perform func GetByTxnRef"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"Response": order})
}

// CreatePayment godoc
// @Summary Create a payment URL
// @Description Build the signed gateway redirect URL for a pending order.
// @ID create-payment
// @Accept  json
// @Produce  json
// @Param payment body createPaymentRequest true "Payment attempt"
// @Success 200 {object} map[string]string "Successful operation"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Order already paid"
// @Router /payments/vnpay [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind data", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paymentURL, err := h.ordSer.CreatePayment(c, req.TxnRef, c.ClientIP(), req.BankCode, req.Locale)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": e.ErrNotFound.Error()})
			return
		}
		if errors.Is(err, e.ErrAlreadyProcessed) {
			c.JSON(http.StatusConflict, gin.H{"error": e.ErrAlreadyProcessed.Error()})
			return
		}
		h.logger.Error("failed to create payment", slog.String("txn_ref", req.TxnRef), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_url": paymentURL})
}

// Return godoc
// @Summary Gateway browser return
// @Description Validate the browser-redirect callback and forward the outcome to the storefront. Advisory only; order state is owned by the IPN route.
// @ID vnpay-return
// @Success 302
// @Router /payments/vnpay/return [get]
func (h *Handler) Return(c *gin.Context) {
	params := vnpay.FlattenQuery(c.Request.URL.Query())
	result := h.ordSer.HandleReturn(c, params)

	redirect, err := url.Parse(h.frontendResultURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bad result url"})
		return
	}

	q := redirect.Query()
	if !result.Valid {
		// Generic failure, nothing sensitive in the URL.
		q.Set("success", "false")
		redirect.RawQuery = q.Encode()
		c.Redirect(http.StatusFound, redirect.String())
		return
	}

	q.Set("success", strconv.FormatBool(result.IsSuccess))
	q.Set("txnRef", result.TxnRef)
	q.Set("amount", strconv.FormatInt(result.Amount, 10))
	q.Set("responseCode", result.ResponseCode)
	redirect.RawQuery = q.Encode()

	c.Redirect(http.StatusFound, redirect.String())
}

// IPN godoc
// @Summary Gateway payment notification
// @Description Authoritative server-to-server callback; applies the exactly-once payment transition and answers in the gateway's code vocabulary.
// @ID vnpay-ipn
// @Produce  json
// @Success 200 {object} domain.IPNResponse
// @Router /payments/vnpay/ipn [get]
func (h *Handler) IPN(c *gin.Context) {
	params := vnpay.FlattenQuery(c.Request.URL.Query())
	resp := h.ordSer.HandleIPN(c, params)

	if resp.RspCode != domain.RspSuccess && resp.RspCode != domain.RspAlreadyConfirmed {
		h.logger.Warn("ipn rejected", slog.String("rsp_code", resp.RspCode), slog.String("txn_ref", params["vnp_TxnRef"]))
	}

	// The gateway always expects HTTP 200; outcome lives in RspCode.
	c.JSON(http.StatusOK, resp)
}

// Homepage godoc
// @Summary Service banner
// @Router / [get]
func (h *Handler) Homepage(c *gin.Context) {
	c.String(http.StatusOK, "bookpay: VNPay payment service")
}
