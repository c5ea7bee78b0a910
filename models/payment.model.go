package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a completed checkout. Immutable once written; the
// referenced cart entries are purged when the payment is recorded.
type Payment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string               `bson:"email" json:"email"`
	Price         float64              `bson:"price" json:"price"`
	TransactionID string               `bson:"transactionId" json:"transactionId"`
	Date          string               `bson:"date" json:"date"`
	CartIDs       []primitive.ObjectID `bson:"cartIds" json:"cartIds"`
	MenuIDs       []primitive.ObjectID `bson:"menuIds" json:"menuIds"`
	Status        string               `bson:"status" json:"status"`
}
