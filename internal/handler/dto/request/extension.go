package request

import (
	"time"
)

type QuoteExtensionRequest struct {
	NewEnd time.Time `json:"new_end" binding:"required"`
}

type InitiateExtensionRequest struct {
	NewEnd time.Time `json:"new_end" binding:"required"`
}

type CompleteExtensionRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}
