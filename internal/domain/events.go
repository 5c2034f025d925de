package domain

import "time"

const (
	EventUserCreated       = "user.created"
	EventSubmissionCreated = "submission.created"
	EventPaymentRecorded   = "payment.recorded"
)

// Event is the envelope published to the broker.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

type PaymentRecordedEvent struct {
	PaymentID     string   `json:"paymentId"`
	Email         string   `json:"email"`
	TransactionID string   `json:"transactionId,omitempty"`
	Price         float64  `json:"price"`
	SubmitIDs     []string `json:"submitIds"`
	Released      int64    `json:"released"`
}
