package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restaurant-api/models"
)

// Connect establishes the shared MongoDB client. The driver manages its
// own connection pooling; one client serves all requests.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Mongo bundles the per-collection stores bound to one database.
type Mongo struct {
	Menu     *MenuMongo
	Cart     *CartMongo
	Users    *UserMongo
	Payments *PaymentMongo
	Stats    *StatsMongo
}

// NewMongo creates the stores bound to the named database.
func NewMongo(client *mongo.Client, dbName string) *Mongo {
	db := client.Database(dbName)
	menu := db.Collection("menu")
	cart := db.Collection("carts")
	users := db.Collection("users")
	payments := db.Collection("payments")

	return &Mongo{
		Menu:     &MenuMongo{coll: menu},
		Cart:     &CartMongo{coll: cart},
		Users:    &UserMongo{coll: users},
		Payments: &PaymentMongo{client: client, coll: payments, cart: cart},
		Stats:    &StatsMongo{menu: menu, cart: cart, users: users, payments: payments},
	}
}

// MenuMongo implements MenuStore over the menu collection.
type MenuMongo struct {
	coll *mongo.Collection
}

// List retrieves all menu items.
func (s *MenuMongo) List(ctx context.Context) ([]models.MenuItem, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching menu: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("error reading menu: %w", err)
	}
	return items, nil
}

// Insert adds a new menu item.
func (s *MenuMongo) Insert(ctx context.Context, item models.MenuItem) (primitive.ObjectID, error) {
	result, err := s.coll.InsertOne(ctx, item)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("error creating menu item: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// Get looks up one menu item by id.
func (s *MenuMongo) Get(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching menu item: %w", err)
	}
	return &item, nil
}

// Update sets the editable menu fields, leaving everything else untouched.
func (s *MenuMongo) Update(ctx context.Context, id primitive.ObjectID, fields models.MenuItemUpdate) (int64, error) {
	update := bson.M{
		"$set": bson.M{
			"name":     fields.Name,
			"recipe":   fields.Recipe,
			"category": fields.Category,
			"price":    fields.Price,
			"image":    fields.Image,
		},
	}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, fmt.Errorf("error updating menu item: %w", err)
	}
	return result.MatchedCount, nil
}

// Delete removes a menu item; absent items are a silent no-op.
func (s *MenuMongo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("error deleting menu item: %w", err)
	}
	return result.DeletedCount, nil
}

// CartMongo implements CartStore over the carts collection.
type CartMongo struct {
	coll *mongo.Collection
}

// ListByEmail retrieves all cart entries for one email.
func (s *CartMongo) ListByEmail(ctx context.Context, email string) ([]models.CartEntry, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("error fetching cart: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.CartEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error reading cart: %w", err)
	}
	return entries, nil
}

// Insert adds a cart entry.
func (s *CartMongo) Insert(ctx context.Context, entry models.CartEntry) (primitive.ObjectID, error) {
	result, err := s.coll.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("error adding cart entry: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// Delete removes one cart entry by id.
func (s *CartMongo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("error removing cart entry: %w", err)
	}
	return result.DeletedCount, nil
}

// UserMongo implements UserStore over the users collection.
type UserMongo struct {
	coll *mongo.Collection
}

// FindByEmail looks up a user by email.
func (s *UserMongo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return &user, nil
}

// Insert adds a user record.
func (s *UserMongo) Insert(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	result, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("error creating user: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// List retrieves all users.
func (s *UserMongo) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error reading users: %w", err)
	}
	return users, nil
}

// PromoteToAdmin sets the user's role to Admin. There is no demote.
func (s *UserMongo) PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (int64, error) {
	update := bson.M{"$set": bson.M{"role": models.RoleAdmin}}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, fmt.Errorf("error promoting user: %w", err)
	}
	return result.MatchedCount, nil
}

// Delete removes a user by id.
func (s *UserMongo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("error deleting user: %w", err)
	}
	return result.DeletedCount, nil
}

// PaymentMongo implements PaymentStore over the payments collection. It
// also holds the cart collection so checkout can purge paid entries.
type PaymentMongo struct {
	client *mongo.Client
	coll   *mongo.Collection
	cart   *mongo.Collection
}

// Record inserts the payment and purges the referenced cart entries.
// Both writes run in a transaction when the deployment supports
// sessions; standalone servers fall back to sequential writes.
func (s *PaymentMongo) Record(ctx context.Context, payment models.Payment) (*PaymentRecordResult, error) {
	purge := bson.M{"_id": bson.M{"$in": payment.CartIDs}}

	session, err := s.client.StartSession()
	if err == nil {
		defer session.EndSession(ctx)
		res, txErr := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			return s.record(sc, payment, purge)
		})
		if txErr == nil {
			return res.(*PaymentRecordResult), nil
		}
		if !transactionsUnsupported(txErr) {
			return nil, txErr
		}
	}

	return s.record(ctx, payment, purge)
}

func (s *PaymentMongo) record(ctx context.Context, payment models.Payment, purge bson.M) (*PaymentRecordResult, error) {
	insert, err := s.coll.InsertOne(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("error recording payment: %w", err)
	}
	del, err := s.cart.DeleteMany(ctx, purge)
	if err != nil {
		return nil, fmt.Errorf("error purging cart: %w", err)
	}
	return &PaymentRecordResult{
		InsertedID:  insert.InsertedID.(primitive.ObjectID),
		PurgedCarts: del.DeletedCount,
	}, nil
}

// transactionsUnsupported detects the IllegalOperation error a
// standalone mongod raises for transaction numbers.
func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 20 || strings.Contains(cmdErr.Message, "Transaction numbers")
	}
	return false
}

// ListByEmail retrieves the payment history for one email.
func (s *PaymentMongo) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("error fetching payment history: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("error reading payment history: %w", err)
	}
	return payments, nil
}

// StatsMongo implements StatsStore across all four collections.
type StatsMongo struct {
	menu     *mongo.Collection
	cart     *mongo.Collection
	users    *mongo.Collection
	payments *mongo.Collection
}

// Totals reports estimated collection counts plus total revenue summed
// across all payments. Revenue is 0 when no payments exist.
func (s *StatsMongo) Totals(ctx context.Context) (*models.Stats, error) {
	customers, err := s.users.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}
	products, err := s.menu.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting menu items: %w", err)
	}
	orders, err := s.cart.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting cart entries: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalRevenue": bson.M{"$sum": "$price"},
		}}},
	}
	cursor, err := s.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error reading revenue: %w", err)
	}

	stats := &models.Stats{
		Customers: customers,
		Products:  products,
		Orders:    orders,
	}
	if len(results) > 0 {
		stats.Revenue = results[0].TotalRevenue
	}
	return stats, nil
}

// OrderStats unwinds each payment's purchased menu ids, joins the menu
// collection to recover category and price, and groups per category.
func (s *StatsMongo) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$menuIds"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "menu",
			"localField":   "menuIds",
			"foreignField": "_id",
			"as":           "menuItems",
		}}},
		{{Key: "$unwind", Value: "$menuItems"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$menuItems.category",
			"quantity": bson.M{"$sum": 1},
			"revenue":  bson.M{"$sum": "$menuItems.price"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"category": "$_id",
			"quantity": "$quantity",
			"revenue":  "$revenue",
		}}},
	}

	cursor, err := s.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating order stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []models.CategoryStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("error reading order stats: %w", err)
	}
	return stats, nil
}
