package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercatto/storefront/internal/cart"
	"github.com/mercatto/storefront/internal/config"
	"github.com/mercatto/storefront/internal/order"
	"github.com/mercatto/storefront/internal/product"
	"github.com/mercatto/storefront/internal/user"
)

const testSecret = "test-secret"

//
// ===== IN-MEMORY STUBS (implement the internal Repository interfaces) =====
//

type stubUsers struct {
	mu    sync.Mutex
	users map[string]*user.User // by id
}

func newStubUsers() *stubUsers { return &stubUsers{users: make(map[string]*user.User)} }

func (s *stubUsers) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cur := range s.users {
		if cur.Email == u.Email {
			return user.ErrAlreadyExist
		}
	}
	cp := *u
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	s.users[u.ID] = &cp
	return nil
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

type stubProducts struct {
	mu    sync.Mutex
	items map[string]*product.Product
}

func newStubProducts() *stubProducts { return &stubProducts{items: make(map[string]*product.Product)} }

func (s *stubProducts) Create(_ context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProducts) List(_ context.Context, _ product.Query) ([]product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]product.Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubProducts) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

type stubCarts struct {
	mu   sync.Mutex
	docs map[string]cart.Document
}

func newStubCarts() *stubCarts { return &stubCarts{docs: make(map[string]cart.Document)} }

func cloneDoc(doc cart.Document) cart.Document {
	out := cart.Document{}
	for itemID, variants := range doc {
		cp := make(map[cart.Variant]int, len(variants))
		for v, qty := range variants {
			cp[v] = qty
		}
		out[itemID] = cp
	}
	return out
}

func (s *stubCarts) Get(_ context.Context, userID string) (cart.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[userID]
	if !ok {
		return cart.Document{}, nil
	}
	return cloneDoc(doc), nil
}

func (s *stubCarts) Save(_ context.Context, userID string, doc cart.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[userID] = cloneDoc(doc)
	return nil
}

func (s *stubCarts) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, userID)
	return nil
}

type stubOrders struct {
	mu     sync.Mutex
	orders map[string]*order.Order
	seq    []string // creation order
}

func newStubOrders() *stubOrders { return &stubOrders{orders: make(map[string]*order.Order)} }

func (s *stubOrders) Create(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	s.orders[o.ID] = &cp
	s.seq = append(s.seq, o.ID)
	return nil
}

func (s *stubOrders) GetByID(_ context.Context, id string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrders) ListAll(_ context.Context, _, _ int) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]order.Order, 0, len(s.seq))
	for i := len(s.seq) - 1; i >= 0; i-- {
		if o, ok := s.orders[s.seq[i]]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrders) ListByUser(_ context.Context, userID string, _, _ int) ([]order.Order, error) {
	all, _ := s.ListAll(context.Background(), 0, 0)
	var out []order.Order
	for _, o := range all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *stubOrders) SetPayment(_ context.Context, id string, paid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Payment = paid
	return nil
}

func (s *stubOrders) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return false, nil
	}
	delete(s.orders, id)
	return true, nil
}

type recordedEvent struct {
	Topic string
	Key   string
	Value []byte
}

type stubPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (s *stubPublisher) Publish(_ context.Context, topic string, key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, recordedEvent{Topic: topic, Key: string(key), Value: value})
	return nil
}

type stubCheckout struct {
	url     string
	lastFee decimal.Decimal
}

func (s *stubCheckout) CreateSession(_ context.Context, o *order.Order, fee decimal.Decimal) (string, error) {
	s.lastFee = fee
	return s.url + o.ID, nil
}

//
// ===== TEST ENVIRONMENT =====
//

type env struct {
	users    *stubUsers
	products *stubProducts
	carts    *stubCarts
	orders   *stubOrders
	pub      *stubPublisher
	checkout *stubCheckout
	router   *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{
		users:    newStubUsers(),
		products: newStubProducts(),
		carts:    newStubCarts(),
		orders:   newStubOrders(),
		pub:      &stubPublisher{},
		checkout: &stubCheckout{url: "https://checkout.test/session/"},
	}
	cfg := config.Config{
		JWTSecret:     testSecret,
		TokenTTL:      time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin-secret",
		DeliveryFee:   decimal.NewFromInt(10),
		Currency:      "usd",
	}
	e.router = newRouter(deps{
		cfg:      cfg,
		users:    e.users,
		products: e.products,
		carts:    e.carts,
		orders:   e.orders,
		pub:      e.pub,
		checkout: e.checkout,
	})
	return e
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func userToken(t *testing.T, userID string) string {
	t.Helper()
	tok, err := user.IssueToken(testSecret, userID, user.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := user.IssueToken(testSecret, "admin@example.com", user.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return out
}

func seedProduct(t *testing.T, e *env, id, name, price string) {
	t.Helper()
	err := e.products.Create(context.Background(), &product.Product{
		ID:     id,
		Name:   name,
		Price:  price,
		Images: []string{"https://img.test/" + id + ".jpg"},
		Sizes:  []string{"S", "M", "L"},
		Colors: []string{"Red", "Blue"},
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func testAddress() order.Address {
	return order.Address{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Street: "12 Analytical St", City: "London", State: "LDN",
		Zipcode: "E1 6AN", Country: "UK", Phone: "5551234",
	}
}
