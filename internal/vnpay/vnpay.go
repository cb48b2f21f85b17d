package vnpay

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"bookpay/internal/domain"
)

// Protocol constants from the gateway's pay API.
const (
	Version       = "2.1.0"
	CommandPay    = "pay"
	CurrCode      = "VND"
	OrderType     = "other"
	DefaultLocale = "vn"

	createDateLayout = "20060102150405" // yyyyMMddHHmmss
)

const (
	sandboxPayURL    = "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"
	productionPayURL = "https://pay.vnpay.vn/vpcpay.html"
)

// Config holds one merchant account's credentials and endpoints. It is
// injected at construction so several credential sets can coexist in one
// process.
type Config struct {
	TmnCode    string
	HashSecret string
	ReturnURL  string
	Production bool
}

type Client struct {
	cfg Config
	now func() time.Time
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		now: time.Now,
	}
}

func (c *Client) payURL() string {
	if c.cfg.Production {
		return productionPayURL
	}
	return sandboxPayURL
}

// BuildPaymentURL assembles, signs and serializes the redirect URL the
// buyer's browser is sent to. req.Amount is in major units; the wire amount
// is scaled by 100 per the gateway convention. BankCode is omitted from the
// parameter set entirely when unset, because an empty-string entry would
// change the canonical string.
func (c *Client) BuildPaymentURL(req domain.PaymentRequest) (string, error) {
	if req.TxnRef == "" {
		return "", fmt.Errorf("vnpay.BuildPaymentURL: empty txn ref")
	}
	if req.Amount <= 0 {
		return "", fmt.Errorf("vnpay.BuildPaymentURL: non-positive amount %d", req.Amount)
	}

	locale := req.Locale
	if locale == "" {
		locale = DefaultLocale
	}

	params := map[string]string{
		"vnp_Version":    Version,
		"vnp_Command":    CommandPay,
		"vnp_TmnCode":    c.cfg.TmnCode,
		"vnp_Amount":     strconv.FormatInt(req.Amount*100, 10),
		"vnp_CreateDate": c.now().Format(createDateLayout),
		"vnp_CurrCode":   CurrCode,
		"vnp_IpAddr":     req.ClientIP,
		"vnp_Locale":     locale,
		"vnp_OrderInfo":  req.OrderInfo,
		"vnp_OrderType":  OrderType,
		"vnp_ReturnUrl":  c.cfg.ReturnURL,
		"vnp_TxnRef":     req.TxnRef,
	}
	if req.BankCode != "" {
		params["vnp_BankCode"] = req.BankCode
	}

	signature := Sign(params, c.cfg.HashSecret)

	// The final query string uses the plain component encoder, not the
	// canonical signing dialect.
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var q strings.Builder
	for i, k := range keys {
		if i > 0 {
			q.WriteByte('&')
		}
		q.WriteString(encodeComponent(k))
		q.WriteByte('=')
		q.WriteString(encodeComponent(params[k]))
	}

	return fmt.Sprintf("%s?%s&%s=%s", c.payURL(), q.String(), SecureHashField, signature), nil
}

// FlattenQuery reduces parsed query values to the single-valued mapping the
// signature covers; repeated keys keep their first value.
func FlattenQuery(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params
}

// VerifyCallback validates a signed gateway callback (browser return or IPN)
// and decodes it. On signature mismatch only Valid=false is set and nothing
// else in the result may be trusted.
func (c *Client) VerifyCallback(params map[string]string) domain.VerificationResult {
	provided := params[SecureHashField]
	if provided == "" || !Verify(params, provided, c.cfg.HashSecret) {
		return domain.VerificationResult{Valid: false}
	}

	amount, err := strconv.ParseInt(params["vnp_Amount"], 10, 64)
	if err != nil {
		amount = 0
	}

	responseCode := params["vnp_ResponseCode"]

	return domain.VerificationResult{
		Valid:             true,
		IsSuccess:         responseCode == domain.ResponseCodeSuccess,
		TxnRef:            params["vnp_TxnRef"],
		Amount:            amount / 100,
		ResponseCode:      responseCode,
		TransactionNo:     params["vnp_TransactionNo"],
		TransactionStatus: params["vnp_TransactionStatus"],
		BankTranNo:        params["vnp_BankTranNo"],
		BankCode:          params["vnp_BankCode"],
	}
}
