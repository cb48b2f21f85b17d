package tests

import (
	"encoding/json"
	"log"

	"bookpay/internal/domain"
)

var (
	InstanceStruct = domain.Order{
		TxnRef:        "ORDER_1700000000_abc123",
		CustomerID:    "nguyen-van-a",
		CustomerEmail: "nguyenvana@gmail.com",
		Items: []domain.OrderItem{
			{
				BookID:   4021,
				Title:    "Nha Gia Kim",
				Author:   "Paulo Coelho",
				ISBN:     "9786046941606",
				Price:    125000,
				Quantity: 2,
			},
		},
		TotalAmount:   250000,
		Currency:      "VND",
		Status:        domain.OrderStatusCreated,
		PaymentStatus: domain.PaymentStatusPending,
	}
	InstanceString string

	InstanceKafka = `{"txn_ref":"ORDER_1700000001_def456","customer_id":"tran-thi-b","customer_email":"tranthib@gmail.com","items":[{"book_id":5130,"title":"Dac Nhan Tam","author":"Dale Carnegie","isbn":"9786048932892","price":86000,"quantity":1}],"total_amount":86000,"currency":"VND"}`
)

func init() {
	orderJSON, err := json.Marshal(InstanceStruct)
	if err != nil {
		log.Fatalf("failed to marshal InstanceStruct: %s", err)
	}
	InstanceString = string(orderJSON)
}
