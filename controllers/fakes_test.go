package controllers

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurant-api/models"
	"restaurant-api/store"
)

// In-memory store fakes backing the handler tests. Each fake can be
// primed with a one-shot error per operation.

type fakeErrs struct {
	mu      sync.Mutex
	nextErr map[string]error
}

func (f *fakeErrs) setErr(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nextErr == nil {
		f.nextErr = make(map[string]error)
	}
	f.nextErr[op] = err
}

func (f *fakeErrs) takeErr(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.nextErr[op]; ok {
		delete(f.nextErr, op)
		return err
	}
	return nil
}

type fakeMenuStore struct {
	fakeErrs
	items map[primitive.ObjectID]models.MenuItem
}

func newFakeMenuStore() *fakeMenuStore {
	return &fakeMenuStore{items: make(map[primitive.ObjectID]models.MenuItem)}
}

func (s *fakeMenuStore) List(_ context.Context) ([]models.MenuItem, error) {
	if err := s.takeErr("List"); err != nil {
		return nil, err
	}
	var out []models.MenuItem
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

func (s *fakeMenuStore) Insert(_ context.Context, item models.MenuItem) (primitive.ObjectID, error) {
	if err := s.takeErr("Insert"); err != nil {
		return primitive.NilObjectID, err
	}
	item.ID = primitive.NewObjectID()
	s.items[item.ID] = item
	return item.ID, nil
}

func (s *fakeMenuStore) Get(_ context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	if err := s.takeErr("Get"); err != nil {
		return nil, err
	}
	item, ok := s.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &item, nil
}

func (s *fakeMenuStore) Update(_ context.Context, id primitive.ObjectID, fields models.MenuItemUpdate) (int64, error) {
	if err := s.takeErr("Update"); err != nil {
		return 0, err
	}
	item, ok := s.items[id]
	if !ok {
		return 0, nil
	}
	item.Name = fields.Name
	item.Recipe = fields.Recipe
	item.Category = fields.Category
	item.Price = fields.Price
	item.Image = fields.Image
	s.items[id] = item
	return 1, nil
}

func (s *fakeMenuStore) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	if err := s.takeErr("Delete"); err != nil {
		return 0, err
	}
	if _, ok := s.items[id]; !ok {
		return 0, nil
	}
	delete(s.items, id)
	return 1, nil
}

type fakeCartStore struct {
	fakeErrs
	entries map[primitive.ObjectID]models.CartEntry
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{entries: make(map[primitive.ObjectID]models.CartEntry)}
}

func (s *fakeCartStore) ListByEmail(_ context.Context, email string) ([]models.CartEntry, error) {
	if err := s.takeErr("ListByEmail"); err != nil {
		return nil, err
	}
	var out []models.CartEntry
	for _, entry := range s.entries {
		if entry.Email == email {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (s *fakeCartStore) Insert(_ context.Context, entry models.CartEntry) (primitive.ObjectID, error) {
	if err := s.takeErr("Insert"); err != nil {
		return primitive.NilObjectID, err
	}
	entry.ID = primitive.NewObjectID()
	s.entries[entry.ID] = entry
	return entry.ID, nil
}

func (s *fakeCartStore) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	if err := s.takeErr("Delete"); err != nil {
		return 0, err
	}
	if _, ok := s.entries[id]; !ok {
		return 0, nil
	}
	delete(s.entries, id)
	return 1, nil
}

type fakeUserStore struct {
	fakeErrs
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if err := s.takeErr("FindByEmail"); err != nil {
		return nil, err
	}
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) Insert(_ context.Context, user models.User) (primitive.ObjectID, error) {
	if err := s.takeErr("Insert"); err != nil {
		return primitive.NilObjectID, err
	}
	user.ID = primitive.NewObjectID()
	s.users[user.ID] = user
	return user.ID, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	if err := s.takeErr("List"); err != nil {
		return nil, err
	}
	var out []models.User
	for _, user := range s.users {
		out = append(out, user)
	}
	return out, nil
}

func (s *fakeUserStore) PromoteToAdmin(_ context.Context, id primitive.ObjectID) (int64, error) {
	if err := s.takeErr("PromoteToAdmin"); err != nil {
		return 0, err
	}
	user, ok := s.users[id]
	if !ok {
		return 0, nil
	}
	user.Role = models.RoleAdmin
	s.users[id] = user
	return 1, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	if err := s.takeErr("Delete"); err != nil {
		return 0, err
	}
	if _, ok := s.users[id]; !ok {
		return 0, nil
	}
	delete(s.users, id)
	return 1, nil
}

// fakePaymentStore shares a fakeCartStore so Record can purge entries
// the same way the Mongo implementation does.
type fakePaymentStore struct {
	fakeErrs
	cart     *fakeCartStore
	payments []models.Payment
}

func newFakePaymentStore(cart *fakeCartStore) *fakePaymentStore {
	return &fakePaymentStore{cart: cart}
}

func (s *fakePaymentStore) Record(_ context.Context, payment models.Payment) (*store.PaymentRecordResult, error) {
	if err := s.takeErr("Record"); err != nil {
		return nil, err
	}
	payment.ID = primitive.NewObjectID()
	s.payments = append(s.payments, payment)

	var purged int64
	for _, id := range payment.CartIDs {
		if _, ok := s.cart.entries[id]; ok {
			delete(s.cart.entries, id)
			purged++
		}
	}
	return &store.PaymentRecordResult{InsertedID: payment.ID, PurgedCarts: purged}, nil
}

func (s *fakePaymentStore) ListByEmail(_ context.Context, email string) ([]models.Payment, error) {
	if err := s.takeErr("ListByEmail"); err != nil {
		return nil, err
	}
	var out []models.Payment
	for _, payment := range s.payments {
		if payment.Email == email {
			out = append(out, payment)
		}
	}
	return out, nil
}

type fakeStatsStore struct {
	fakeErrs
	totals     models.Stats
	orderStats []models.CategoryStat
}

func (s *fakeStatsStore) Totals(_ context.Context) (*models.Stats, error) {
	if err := s.takeErr("Totals"); err != nil {
		return nil, err
	}
	totals := s.totals
	return &totals, nil
}

func (s *fakeStatsStore) OrderStats(_ context.Context) ([]models.CategoryStat, error) {
	if err := s.takeErr("OrderStats"); err != nil {
		return nil, err
	}
	return s.orderStats, nil
}

// fakeIntentCreator records the requested amount.
type fakeIntentCreator struct {
	amount int64
	secret string
	err    error
}

func (f *fakeIntentCreator) CreatePaymentIntent(amountCents int64) (string, error) {
	f.amount = amountCents
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}

var (
	_ store.MenuStore    = (*fakeMenuStore)(nil)
	_ store.CartStore    = (*fakeCartStore)(nil)
	_ store.UserStore    = (*fakeUserStore)(nil)
	_ store.PaymentStore = (*fakePaymentStore)(nil)
	_ store.StatsStore   = (*fakeStatsStore)(nil)
)
