// Package store defines the persistence interfaces for the restaurant
// backend and their MongoDB implementation. Controllers depend on these
// interfaces rather than concrete collection handles.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurant-api/models"
)

// ErrNotFound is returned when a looked-up document does not exist.
var ErrNotFound = errors.New("store: not found")

// MenuStore manages menu items.
type MenuStore interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	Insert(ctx context.Context, item models.MenuItem) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	// Update replaces only the fields carried by MenuItemUpdate and
	// returns the number of matched documents.
	Update(ctx context.Context, id primitive.ObjectID, fields models.MenuItemUpdate) (int64, error)
	// Delete removes the item and returns the deleted count; deleting
	// an absent item is not an error.
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// CartStore manages cart entries.
type CartStore interface {
	ListByEmail(ctx context.Context, email string) ([]models.CartEntry, error)
	Insert(ctx context.Context, entry models.CartEntry) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// UserStore manages user records.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user models.User) (primitive.ObjectID, error)
	List(ctx context.Context) ([]models.User, error)
	PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// PaymentRecordResult reports both writes of a payment completion.
type PaymentRecordResult struct {
	InsertedID  primitive.ObjectID `json:"insertedId"`
	PurgedCarts int64              `json:"deletedCount"`
}

// PaymentStore manages payment records.
type PaymentStore interface {
	// Record inserts the payment and purges the cart entries listed in
	// its CartIDs.
	Record(ctx context.Context, payment models.Payment) (*PaymentRecordResult, error)
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

// StatsStore produces the admin dashboard aggregates.
type StatsStore interface {
	Totals(ctx context.Context) (*models.Stats, error)
	OrderStats(ctx context.Context) ([]models.CategoryStat, error)
}
