package checkout

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/cart"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/errors"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
	"github.com/shopspring/decimal"
)

// Backend is the order/promotion/payment slice of the API client.
type Backend interface {
	GetPromotionByCode(ctx context.Context, code string) (*models.Promotion, error)
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	CreateVNPayPayment(ctx context.Context, orderID int64) (string, error)
	VerifyVNPayReturn(ctx context.Context, params url.Values) (*models.PaymentVerification, error)
}

// Notifier is the toast surface. The terminal front end prints these; tests
// record them.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Draft is the transient set of fields being assembled into an order-creation
// request. It lives only for the duration of the checkout flow and is never
// retried automatically.
type Draft struct {
	Address       models.AddressSelection
	PhoneNumber   string
	Note          string
	PaymentMethod models.PaymentMethod
}

// Outcome reports a successful submission. RedirectURL is set only on the
// externally-hosted payment path; the caller must hand control to it.
type Outcome struct {
	Order       *models.Order
	RedirectURL string
}

// Orchestrator assembles one order-creation request from cart, address and
// promotion state, submits it, and branches on payment method.
type Orchestrator struct {
	backend  Backend
	cart     *cart.Session
	notifier Notifier
	validate *validator.Validate

	promotion   *models.Promotion
	fieldErrors map[string]string
}

func NewOrchestrator(backend Backend, cartSession *cart.Session, notifier Notifier) *Orchestrator {
	return &Orchestrator{
		backend:     backend,
		cart:        cartSession,
		notifier:    notifier,
		validate:    validator.New(),
		fieldErrors: map[string]string{},
	}
}

// Promotion returns the applied preview, or nil when none is applied.
func (o *Orchestrator) Promotion() *models.Promotion {
	return o.promotion
}

// FieldErrors is the inline error map: client pre-flight failures and the
// server's field-keyed 400 bodies both land here.
func (o *Orchestrator) FieldErrors() map[string]string {
	return o.fieldErrors
}

// ApplyCode looks a promotion up by code. Success stores the preview; any
// failure discards a previously applied one, so a stale discount never
// lingers on screen.
func (o *Orchestrator) ApplyCode(ctx context.Context, code string) {

	code = strings.TrimSpace(code)
	if code == "" {
		return
	}

	promotion, err := o.backend.GetPromotionByCode(ctx, strings.ToUpper(code))
	if err != nil {
		o.promotion = nil
		o.notifier.Error(errors.MessageOr(err, "Mã khuyến mãi không hợp lệ"))

		return
	}

	o.promotion = promotion
	o.notifier.Success("Áp dụng mã khuyến mãi thành công!")
}

// EstimateDiscount previews the discount for a given cart total. This mirrors
// the server's computation for display only; the authoritative amounts come
// back on the created order.
func (o *Orchestrator) EstimateDiscount(totalAmount decimal.Decimal) decimal.Decimal {

	if o.promotion == nil {
		return decimal.Zero
	}

	var discount decimal.Decimal

	if o.promotion.DiscountType == models.DiscountTypePercentage {
		discount = totalAmount.Mul(o.promotion.DiscountValue).Div(decimal.NewFromInt(100))
	} else {
		discount = o.promotion.DiscountValue
	}

	if o.promotion.MaxDiscountAmount != nil && discount.GreaterThan(*o.promotion.MaxDiscountAmount) {
		discount = *o.promotion.MaxDiscountAmount
	}

	return discount
}

func (o *Orchestrator) EstimateFinalAmount(totalAmount decimal.Decimal) decimal.Decimal {
	return totalAmount.Sub(o.EstimateDiscount(totalAmount))
}

// Submit validates the draft, creates the order, and branches on payment
// method. Pre-flight failures block the network call entirely, each with its
// own field error and toast.
func (o *Orchestrator) Submit(ctx context.Context, draft *Draft) (*Outcome, error) {

	o.fieldErrors = map[string]string{}

	if err := o.validate.Var(draft.Address.FullAddress, "required"); err != nil {
		o.fieldErrors["shippingAddress"] = "Vui lòng chọn địa chỉ đầy đủ"
		o.notifier.Error("Vui lòng nhập đầy đủ địa chỉ giao hàng")

		return nil, errors.ValidationError("shipping address is required")
	}

	if err := o.validate.Var(draft.PhoneNumber, "required"); err != nil {
		o.fieldErrors["phoneNumber"] = "Số điện thoại không được để trống"
		o.notifier.Error("Vui lòng nhập số điện thoại")

		return nil, errors.ValidationError("phone number is required")
	}

	req := &models.CreateOrderRequest{
		ShippingAddress: draft.Address.FullAddress,
		PhoneNumber:     draft.PhoneNumber,
		Note:            draft.Note,
		PaymentMethod:   draft.PaymentMethod,
	}

	// The applied code travels as a plain string; the backend re-validates it
	// at order-creation time.
	if o.promotion != nil {
		req.PromotionCode = o.promotion.Code
	}

	order, err := o.backend.CreateOrder(ctx, req)
	if err != nil {
		o.reportSubmitFailure(err)

		return nil, err
	}

	if draft.PaymentMethod == models.PaymentMethodVNPay {
		redirectURL, err := o.backend.CreateVNPayPayment(ctx, order.ID)
		if err != nil {
			o.notifier.Error(errors.MessageOr(err, "Đã có lỗi xảy ra"))

			return nil, err
		}

		return &Outcome{Order: order, RedirectURL: redirectURL}, nil
	}

	// Pay on delivery: the cart is cleared exactly once, then the caller
	// navigates to the order list.
	o.cart.Clear(ctx)
	o.notifier.Success("Đặt hàng thành công!")

	return &Outcome{Order: order}, nil
}

// reportSubmitFailure merges a field-keyed error body into the inline map;
// only errors without one get the generic toast.
func (o *Orchestrator) reportSubmitFailure(err error) {

	if appErr, ok := errors.IsAppError(err); ok && len(appErr.FieldErrors) > 0 {
		for field, message := range appErr.FieldErrors {
			o.fieldErrors[field] = message
		}

		return
	}

	o.notifier.Error(errors.MessageOr(err, "Đã có lỗi xảy ra"))
}
