package rest

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"bookpay/internal/domain"
	handler_mocks "bookpay/internal/ports/rest/mocks"
	"bookpay/pkg/e"
	"bookpay/pkg/logger"
	"bookpay/tests"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

const testFrontendURL = "https://shop.example/thanh-toan/ket-qua"

func setupRouter(t *testing.T) (*gin.Engine, *handler_mocks.MockOrderService, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	mockService := handler_mocks.NewMockOrderService(ctrl)

	handler := NewHandler(logger.SetupPrettySlog(), mockService, testFrontendURL)

	r := gin.Default()
	r.POST("/orders", handler.PostOrder)
	r.GET("/orders/:txnRef", handler.GetOrder)
	r.POST("/payments/vnpay", handler.CreatePayment)
	r.GET("/payments/vnpay/return", handler.Return)
	r.GET("/payments/vnpay/ipn", handler.IPN)

	return r, mockService, ctrl
}

func Test_IPNHandler(t *testing.T) {
	type mockBehavior func(r *handler_mocks.MockOrderService)
	testCases := []struct {
		name             string
		requestURL       string
		mockBehavior     mockBehavior
		expectedResponse string
	}{
		{
			name:       "Confirm success",
			requestURL: "/payments/vnpay/ipn?vnp_TxnRef=ORDER_1&vnp_Amount=25000000&vnp_ResponseCode=00&vnp_SecureHash=abc",
			mockBehavior: func(r *handler_mocks.MockOrderService) {
				r.EXPECT().HandleIPN(gomock.Any(), map[string]string{
					"vnp_TxnRef":       "ORDER_1",
					"vnp_Amount":       "25000000",
					"vnp_ResponseCode": "00",
					"vnp_SecureHash":   "abc",
				}).Return(domain.IPNResponse{RspCode: domain.RspSuccess, Message: "Confirm Success"})
			},
			expectedResponse: `{"RspCode":"00","Message":"Confirm Success"}`,
		},
		{
			name:       "Invalid signature",
			requestURL: "/payments/vnpay/ipn?vnp_TxnRef=ORDER_1&vnp_Amount=1&vnp_SecureHash=bad",
			mockBehavior: func(r *handler_mocks.MockOrderService) {
				r.EXPECT().HandleIPN(gomock.Any(), gomock.Any()).
					Return(domain.IPNResponse{RspCode: domain.RspInvalidSignature, Message: "Invalid signature"})
			},
			expectedResponse: `{"RspCode":"97","Message":"Invalid signature"}`,
		},
		{
			name:       "Already confirmed",
			requestURL: "/payments/vnpay/ipn?vnp_TxnRef=ORDER_1&vnp_Amount=25000000&vnp_SecureHash=abc",
			mockBehavior: func(r *handler_mocks.MockOrderService) {
				r.EXPECT().HandleIPN(gomock.Any(), gomock.Any()).
					Return(domain.IPNResponse{RspCode: domain.RspAlreadyConfirmed, Message: "Order already confirmed"})
			},
			expectedResponse: `{"RspCode":"02","Message":"Order already confirmed"}`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r, mockService, ctrl := setupRouter(t)
			defer ctrl.Finish()

			testCase.mockBehavior(mockService)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", testCase.requestURL, nil)
			r.ServeHTTP(w, req)

			// The gateway retry loop keys off RspCode, never HTTP status.
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, testCase.expectedResponse, w.Body.String())
		})
	}
}

func Test_ReturnHandler(t *testing.T) {
	type mockBehavior func(r *handler_mocks.MockOrderService)
	testCases := []struct {
		name          string
		mockBehavior  mockBehavior
		expectedQuery map[string]string
	}{
		{
			name: "Valid and paid",
			mockBehavior: func(r *handler_mocks.MockOrderService) {
				r.EXPECT().HandleReturn(gomock.Any(), gomock.Any()).Return(domain.VerificationResult{
					Valid:        true,
					IsSuccess:    true,
					TxnRef:       "ORDER_1700000000_abc123",
					Amount:       250000,
					ResponseCode: "00",
				})
			},
			expectedQuery: map[string]string{
				"success":      "true",
				"txnRef":       "ORDER_1700000000_abc123",
				"amount":       "250000",
				"responseCode": "00",
			},
		},
		{
			name: "Valid but declined",
			mockBehavior: func(r *handler_mocks.MockOrderService) {
				r.EXPECT().HandleReturn(gomock.Any(), gomock.Any()).Return(domain.VerificationResult{
					Valid:        true,
					IsSuccess:    false,
					TxnRef:       "ORDER_1700000000_abc123",
					Amount:       250000,
					ResponseCode: "24",
				})
			},
			expectedQuery: map[string]string{
				"success":      "false",
				"responseCode": "24",
			},
		},
		{
			name: "Invalid signature - generic failure only",
			mockBehavior: func(r *handler_mocks.MockOrderService) {
				r.EXPECT().HandleReturn(gomock.Any(), gomock.Any()).Return(domain.VerificationResult{Valid: false})
			},
			expectedQuery: map[string]string{
				"success": "false",
				"txnRef":  "",
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r, mockService, ctrl := setupRouter(t)
			defer ctrl.Finish()

			testCase.mockBehavior(mockService)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/payments/vnpay/return?vnp_TxnRef=x&vnp_SecureHash=y", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusFound, w.Code)

			location, err := url.Parse(w.Header().Get("Location"))
			assert.NoError(t, err)
			assert.Equal(t, "shop.example", location.Host)
			for k, v := range testCase.expectedQuery {
				assert.Equal(t, v, location.Query().Get(k), "query param %s", k)
			}
		})
	}
}

func Test_CreatePaymentHandler(t *testing.T) {
	type mockBehavior func(r *handler_mocks.MockOrderService)
	testCases := []struct {
		name               string
		body               string
		mockBehavior       mockBehavior
		expectedStatusCode int
		expectedResponse   string
	}{
		{
			name: "OK",
			body: `{"txn_ref":"ORDER_1700000000_abc123","bank_code":"NCB","locale":"vn"}`,
			mockBehavior: func(r *handler_mocks.MockOrderService) {
				r.EXPECT().CreatePayment(gomock.Any(), "ORDER_1700000000_abc123", gomock.Any(), "NCB", "vn").
					Return("https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?vnp_Amount=25000000", nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"payment_url":"https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?vnp_Amount=25000000"}`,
		},
		{
			name: "Order not found",
			body: `{"txn_ref":"ORDER_missing"}`,
			mockBehavior: func(r *handler_mocks.MockOrderService) {
				r.EXPECT().CreatePayment(gomock.Any(), "ORDER_missing", gomock.Any(), "", "").
					Return("", e.ErrNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
			expectedResponse:   fmt.Sprintf(`{"error":"%s"}`, e.ErrNotFound.Error()),
		},
		{
			name: "Already paid",
			body: `{"txn_ref":"ORDER_paid"}`,
			mockBehavior: func(r *handler_mocks.MockOrderService) {
				r.EXPECT().CreatePayment(gomock.Any(), "ORDER_paid", gomock.Any(), "", "").
					Return("", e.ErrAlreadyProcessed)
			},
			expectedStatusCode: http.StatusConflict,
			expectedResponse:   fmt.Sprintf(`{"error":"%s"}`, e.ErrAlreadyProcessed.Error()),
		},
		{
			name:               "Missing txn_ref",
			body:               `{"bank_code":"NCB"}`,
			mockBehavior:       func(r *handler_mocks.MockOrderService) {},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r, mockService, ctrl := setupRouter(t)
			defer ctrl.Finish()

			testCase.mockBehavior(mockService)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/payments/vnpay", bytes.NewBufferString(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, testCase.expectedStatusCode, w.Code)
			if testCase.expectedResponse != "" {
				assert.JSONEq(t, testCase.expectedResponse, w.Body.String())
			}
		})
	}
}

func Test_GetOrderHandler(t *testing.T) {
	type mockBehavior func(r *handler_mocks.MockOrderService)
	testCases := []struct {
		name               string
		requestURL         string
		mockBehavior       mockBehavior
		expectedStatusCode int
		expectedResponse   string
	}{
		{
			name:       "OK",
			requestURL: "/orders/" + tests.InstanceStruct.TxnRef,
			mockBehavior: func(r *handler_mocks.MockOrderService) {
				r.EXPECT().GetByTxnRef(gomock.Any(), tests.InstanceStruct.TxnRef).Return(tests.InstanceStruct, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedResponse:   fmt.Sprintf(`{"Response": %s}`, tests.InstanceString),
		},
		{
			name:       "Not Found",
			requestURL: "/orders/ORDER_missing",
			mockBehavior: func(r *handler_mocks.MockOrderService) {
				r.EXPECT().GetByTxnRef(gomock.Any(), "ORDER_missing").Return(domain.Order{}, e.ErrNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
			expectedResponse:   fmt.Sprintf(`{"error":"%s"}`, e.ErrNotFound.Error()),
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r, mockService, ctrl := setupRouter(t)
			defer ctrl.Finish()

			testCase.mockBehavior(mockService)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", testCase.requestURL, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, testCase.expectedStatusCode, w.Code)
			assert.JSONEq(t, testCase.expectedResponse, w.Body.String())
		})
	}
}

func Test_PostOrderHandler(t *testing.T) {
	r, mockService, ctrl := setupRouter(t)
	defer ctrl.Finish()

	mockService.EXPECT().CreateOrder(gomock.Any(), tests.InstanceStruct).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString(tests.InstanceString))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"txn_ref":"%s"}`, tests.InstanceStruct.TxnRef), w.Body.String())
}
