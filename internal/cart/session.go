package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/errors"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/session"
)

// Backend is the cart-mutating slice of the API client.
type Backend interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddCartItem(ctx context.Context, req *models.AddItemRequest) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, itemID int64, req *models.UpdateItemRequest) (*models.Cart, error)
	RemoveCartItem(ctx context.Context, itemID int64) (*models.Cart, error)
	ClearCart(ctx context.Context) error
}

// Result is the uniform outcome of a cart mutation. Message carries the
// server's explanation when one was given, otherwise a fixed fallback.
type Result struct {
	Success bool
	Message string
}

// Session is the client's single source of truth for "what is in the cart
// right now". It never computes totals; every successful mutation replaces
// the cached snapshot wholesale with the server's response.
type Session struct {
	mu      sync.RWMutex
	backend Backend
	auth    *session.Session
	cart    *models.Cart
}

func NewSession(backend Backend, auth *session.Session) *Session {

	s := &Session{backend: backend, auth: auth}

	if auth != nil {
		auth.OnAuthChange(func(signedIn bool) {
			if signedIn {
				s.Fetch(context.Background())
			} else {
				s.drop()
			}
		})
	}

	return s
}

// Snapshot returns the last server-confirmed cart, or nil when there is none.
func (s *Session) Snapshot() *models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart
}

func (s *Session) ItemCount() int {

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cart == nil {
		return 0
	}

	return s.cart.TotalItems
}

// Fetch refreshes the snapshot from the server. A failure is non-fatal: the
// prior snapshot stays in place and the error is only logged, so the badge
// simply keeps showing stale or zero state.
func (s *Session) Fetch(ctx context.Context) {

	if s.auth != nil && !s.auth.IsAuthenticated() {
		return
	}

	cart, err := s.backend.GetCart(ctx)
	if err != nil {
		slog.Error("Failed to fetch cart", slog.String("error", err.Error()))
		return
	}

	s.replace(cart)
}

func (s *Session) AddItem(ctx context.Context, productID int64, quantity int) Result {

	if quantity < 1 {
		return Result{Success: false, Message: "Số lượng không hợp lệ"}
	}

	cart, err := s.backend.AddCartItem(ctx, &models.AddItemRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return Result{Success: false, Message: errors.MessageOr(err, "Không thể thêm sản phẩm vào giỏ hàng")}
	}

	s.replace(cart)

	return Result{Success: true, Message: "Đã thêm sản phẩm vào giỏ hàng"}
}

// UpdateItem sets a line's quantity outright. Callers clamp decrements at 1;
// a request below that never reaches the network.
func (s *Session) UpdateItem(ctx context.Context, itemID int64, quantity int) Result {

	if quantity < 1 {
		return Result{Success: false, Message: "Số lượng không hợp lệ"}
	}

	cart, err := s.backend.UpdateCartItem(ctx, itemID, &models.UpdateItemRequest{Quantity: quantity})
	if err != nil {
		return Result{Success: false, Message: errors.MessageOr(err, "Không thể cập nhật giỏ hàng")}
	}

	s.replace(cart)

	return Result{Success: true}
}

func (s *Session) RemoveItem(ctx context.Context, itemID int64) Result {

	cart, err := s.backend.RemoveCartItem(ctx, itemID)
	if err != nil {
		return Result{Success: false, Message: errors.MessageOr(err, "Không thể xóa sản phẩm")}
	}

	s.replace(cart)

	return Result{Success: true}
}

// Clear empties the cart server-side. On success the snapshot becomes absent,
// not an empty cart; there is conceptually no cart until the next fetch.
func (s *Session) Clear(ctx context.Context) Result {

	if err := s.backend.ClearCart(ctx); err != nil {
		return Result{Success: false, Message: errors.MessageOr(err, "Không thể xóa giỏ hàng")}
	}

	s.drop()

	return Result{Success: true}
}

// replace swaps in a brand-new snapshot object so consumers comparing
// references see every confirmed change.
func (s *Session) replace(cart *models.Cart) {
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
}

func (s *Session) drop() {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
}
