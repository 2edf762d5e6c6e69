package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/cart"
	appErrors "github.com/nguyentunghieu19/nhom7-ptdacntt/internal/errors"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCartBackend struct {
	mock.Mock
}

func (m *mockCartBackend) GetCart(ctx context.Context) (*models.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *mockCartBackend) AddCartItem(ctx context.Context, req *models.AddItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *mockCartBackend) UpdateCartItem(ctx context.Context, itemID int64, req *models.UpdateItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *mockCartBackend) RemoveCartItem(ctx context.Context, itemID int64) (*models.Cart, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *mockCartBackend) ClearCart(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func serverCart(totalItems int) *models.Cart {
	return &models.Cart{
		ID:          1,
		Items:       []models.CartItem{{ID: 10, ProductID: 5, Quantity: totalItems}},
		TotalItems:  totalItems,
		TotalAmount: decimal.NewFromInt(int64(totalItems) * 100000),
	}
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Snapshot Replaced", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)
		mockBackend.On("GetCart", ctx).Return(serverCart(2), nil).Once()

		// Act
		session.Fetch(ctx)

		// Assert
		assert.NotNil(t, session.Snapshot())
		assert.Equal(t, 2, session.ItemCount())
		mockBackend.AssertExpectations(t)
	})

	t.Run("Failure - Prior Snapshot Stays", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)
		mockBackend.On("GetCart", ctx).Return(serverCart(3), nil).Once()
		session.Fetch(ctx)
		mockBackend.On("GetCart", ctx).Return(nil, errors.New("connection refused")).Once()

		// Act
		session.Fetch(ctx)

		// Assert
		assert.Equal(t, 3, session.ItemCount())
		mockBackend.AssertExpectations(t)
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Snapshot Is A New Object", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)
		mockBackend.On("GetCart", ctx).Return(serverCart(1), nil).Once()
		session.Fetch(ctx)
		before := session.Snapshot()
		mockBackend.On("AddCartItem", ctx, &models.AddItemRequest{ProductID: 5, Quantity: 2}).
			Return(serverCart(3), nil).Once()

		// Act
		result := session.AddItem(ctx, 5, 2)

		// Assert
		assert.True(t, result.Success)
		assert.Equal(t, "Đã thêm sản phẩm vào giỏ hàng", result.Message)
		assert.NotSame(t, before, session.Snapshot())
		assert.Equal(t, 3, session.ItemCount())
		mockBackend.AssertExpectations(t)
	})

	t.Run("Failure - Server Message Wins", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)
		mockBackend.On("AddCartItem", ctx, mock.AnythingOfType("*models.AddItemRequest")).
			Return(nil, appErrors.BadRequestError("Sản phẩm đã hết hàng")).Once()

		// Act
		result := session.AddItem(ctx, 5, 1)

		// Assert
		assert.False(t, result.Success)
		assert.Equal(t, "Sản phẩm đã hết hàng", result.Message)
		assert.Nil(t, session.Snapshot())
		mockBackend.AssertExpectations(t)
	})

	t.Run("Failure - Fallback Message", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)
		mockBackend.On("AddCartItem", ctx, mock.AnythingOfType("*models.AddItemRequest")).
			Return(nil, errors.New("dial tcp: timeout")).Once()

		// Act
		result := session.AddItem(ctx, 5, 1)

		// Assert
		assert.False(t, result.Success)
		assert.Equal(t, "Không thể thêm sản phẩm vào giỏ hàng", result.Message)
		mockBackend.AssertExpectations(t)
	})

	t.Run("Failure - Quantity Below One Never Reaches The Network", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)

		// Act
		result := session.AddItem(ctx, 5, 0)

		// Assert
		assert.False(t, result.Success)
		assert.Equal(t, "Số lượng không hợp lệ", result.Message)
		mockBackend.AssertNotCalled(t, "AddCartItem", mock.Anything, mock.Anything)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)
		mockBackend.On("UpdateCartItem", ctx, int64(10), &models.UpdateItemRequest{Quantity: 4}).
			Return(serverCart(4), nil).Once()

		// Act
		result := session.UpdateItem(ctx, 10, 4)

		// Assert
		assert.True(t, result.Success)
		assert.Equal(t, 4, session.ItemCount())
		mockBackend.AssertExpectations(t)
	})

	t.Run("Failure - Quantity Below One Is Rejected Locally", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)

		// Act
		result := session.UpdateItem(ctx, 10, 0)

		// Assert
		assert.False(t, result.Success)
		assert.Equal(t, "Số lượng không hợp lệ", result.Message)
		mockBackend.AssertNotCalled(t, "UpdateCartItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Snapshot Untouched", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)
		mockBackend.On("GetCart", ctx).Return(serverCart(2), nil).Once()
		session.Fetch(ctx)
		mockBackend.On("UpdateCartItem", ctx, int64(10), mock.AnythingOfType("*models.UpdateItemRequest")).
			Return(nil, appErrors.ServerError("Đã có lỗi xảy ra")).Once()

		// Act
		result := session.UpdateItem(ctx, 10, 5)

		// Assert
		assert.False(t, result.Success)
		assert.Equal(t, 2, session.ItemCount())
		mockBackend.AssertExpectations(t)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - Fallback Message", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)
		mockBackend.On("RemoveCartItem", ctx, int64(10)).
			Return(nil, errors.New("eof")).Once()

		// Act
		result := session.RemoveItem(ctx, 10)

		// Assert
		assert.False(t, result.Success)
		assert.Equal(t, "Không thể xóa sản phẩm", result.Message)
		mockBackend.AssertExpectations(t)
	})
}

func TestClear(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Snapshot Becomes Absent", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)
		mockBackend.On("GetCart", ctx).Return(serverCart(2), nil).Once()
		session.Fetch(ctx)
		mockBackend.On("ClearCart", ctx).Return(nil).Once()

		// Act
		result := session.Clear(ctx)

		// Assert
		assert.True(t, result.Success)
		assert.Nil(t, session.Snapshot())
		assert.Equal(t, 0, session.ItemCount())
		mockBackend.AssertExpectations(t)
	})

	t.Run("Failure - Snapshot Stays", func(t *testing.T) {
		// Arrange
		mockBackend := new(mockCartBackend)
		session := cart.NewSession(mockBackend, nil)
		mockBackend.On("GetCart", ctx).Return(serverCart(2), nil).Once()
		session.Fetch(ctx)
		mockBackend.On("ClearCart", ctx).Return(appErrors.ServerError("")).Once()

		// Act
		result := session.Clear(ctx)

		// Assert
		assert.False(t, result.Success)
		assert.Equal(t, "Không thể xóa giỏ hàng", result.Message)
		assert.NotNil(t, session.Snapshot())
		mockBackend.AssertExpectations(t)
	})
}
