package model

import "time"

// PurchaseOutcome is the recorded result of one purchase attempt.
type PurchaseOutcome string

const (
	PurchaseSuccess PurchaseOutcome = "success"
	PurchaseFailed  PurchaseOutcome = "failed"
)

// PurchaseRecord is an immutable, append-only record of one purchase
// attempt that entered the order pipeline.
type PurchaseRecord struct {
	ID           string          `json:"id"`
	PlanCode     string          `json:"planCode"`
	Datacenter   string          `json:"datacenter"`
	Status       PurchaseOutcome `json:"status"`
	OrderID      string          `json:"orderId,omitempty"`
	OrderURL     string          `json:"orderUrl,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	PurchaseTime time.Time       `json:"purchaseTime"`
}
