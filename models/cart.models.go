package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartEntry represents a menu item placed in a user's cart.
// Menu fields are denormalized so the cart renders without a join.
type CartEntry struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email  string             `bson:"email" json:"email"`
	MenuID primitive.ObjectID `bson:"menuId" json:"menuId"`
	Name   string             `bson:"name" json:"name"`
	Image  string             `bson:"image" json:"image"`
	Price  float64            `bson:"price" json:"price"`
}
