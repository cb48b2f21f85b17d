package domain

// PaymentRequest carries everything needed to build a gateway redirect URL
// for one payment attempt. Amount is in major units (VND has no subunit);
// the gateway wire format scales it by 100.
type PaymentRequest struct {
	TxnRef    string `json:"txn_ref" validate:"required"`
	Amount    int64  `json:"amount" validate:"required,min=1"`
	OrderInfo string `json:"order_info" validate:"required"`
	ClientIP  string `json:"client_ip" validate:"required"`
	Locale    string `json:"locale"`
	BankCode  string `json:"bank_code"`
}

// VerificationResult is the decoded outcome of a signed gateway callback.
// Valid=false means the signature did not match and every other field
// must be ignored.
type VerificationResult struct {
	Valid             bool   `json:"valid"`
	IsSuccess         bool   `json:"is_success"`
	TxnRef            string `json:"txn_ref"`
	Amount            int64  `json:"amount"`
	ResponseCode      string `json:"response_code"`
	TransactionNo     string `json:"transaction_no"`
	TransactionStatus string `json:"transaction_status,omitempty"`
	BankTranNo        string `json:"bank_tran_no,omitempty"`
	BankCode          string `json:"bank_code,omitempty"`
}

// IPNResponse is the small status object the gateway polls against; it
// retries delivery on any code other than RspSuccess and RspAlreadyConfirmed.
type IPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

// Response codes from the gateway's IPN documentation.
const (
	RspSuccess          = "00"
	RspOrderNotFound    = "01"
	RspAlreadyConfirmed = "02"
	RspInvalidAmount    = "04"
	RspInvalidSignature = "97"
	RspUnknownError     = "99"
)

// ResponseCodeSuccess is the gateway's payment-success sentinel in
// vnp_ResponseCode.
const ResponseCodeSuccess = "00"
