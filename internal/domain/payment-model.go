package domain

import "time"

// Payment is immutable once stored.
type Payment struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" bson:"_id,omitempty" json:"_id"`
	Email         string    `gorm:"type:varchar(320);index;not null" bson:"email" json:"email"`
	TransactionID string    `gorm:"type:varchar(255)" bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Price         float64   `bson:"price" json:"price"`
	Date          string    `gorm:"type:varchar(64)" bson:"date,omitempty" json:"date,omitempty"`
	SubmitIDs     []string  `gorm:"serializer:json" bson:"submitIds" json:"submitIds"`
	Status        string    `gorm:"type:varchar(20)" bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt     time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// PaymentOutcome pairs the payment insert with the release of the covered
// submissions.
type PaymentOutcome struct {
	PaymentResult InsertResult `json:"paymentResult"`
	DeleteResult  DeleteResult `json:"deleteResult"`
}
