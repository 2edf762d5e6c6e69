package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
	"github.com/shopspring/decimal"
)

// Product descriptions come from the backend as HTML authored in the admin
// back-office; strip all markup before printing to a terminal.
var sanitizer = bluemonday.StrictPolicy()

func PlainText(htmlText string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(htmlText)))
}

// VND renders an amount the way the storefront shows prices: dot-separated
// thousands with the đồng sign.
func VND(amount decimal.Decimal) string {

	raw := amount.Round(0).String()

	negative := strings.HasPrefix(raw, "-")
	digits := strings.TrimPrefix(raw, "-")

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}

	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, ".")
	if negative {
		out = "-" + out
	}

	return out + "đ"
}

func Product(w io.Writer, p *models.Product) {

	fmt.Fprintf(w, "#%d  %s — %s (kho: %d)\n", p.ID, p.Name, VND(p.Price), p.StockQuantity)

	if desc := PlainText(p.Description); desc != "" {
		fmt.Fprintf(w, "    %s\n", desc)
	}
}

func ProductPage(w io.Writer, page *models.ProductPage) {

	for i := range page.Content {
		Product(w, &page.Content[i])
	}

	fmt.Fprintf(w, "Trang %d/%d (%d sản phẩm)\n", page.Number+1, page.TotalPages, page.TotalElements)
}

func Cart(w io.Writer, c *models.Cart) {

	if c == nil || len(c.Items) == 0 {
		fmt.Fprintln(w, "Giỏ hàng trống")
		return
	}

	for _, item := range c.Items {
		fmt.Fprintf(w, "[%d] %s x %d = %s\n", item.ID, item.ProductName, item.Quantity, VND(item.Subtotal))
	}

	fmt.Fprintf(w, "Tổng cộng (%d sản phẩm): %s\n", c.TotalItems, VND(c.TotalAmount))
}

func Order(w io.Writer, o *models.Order) {

	fmt.Fprintf(w, "Đơn %s — %s — %s (%s)\n", o.OrderNumber, o.Status, VND(o.FinalAmount), o.PaymentMethod)

	for _, item := range o.Items {
		fmt.Fprintf(w, "    %s x %d = %s\n", item.ProductName, item.Quantity, VND(item.Subtotal))
	}

	if !o.DiscountAmount.IsZero() {
		fmt.Fprintf(w, "    Giảm giá: -%s\n", VND(o.DiscountAmount))
	}

	fmt.Fprintf(w, "    Giao đến: %s (%s)\n", o.ShippingAddress, o.PhoneNumber)
}

func OrderPage(w io.Writer, page *models.OrderPage) {

	for i := range page.Content {
		Order(w, &page.Content[i])
	}

	fmt.Fprintf(w, "Trang %d/%d (%d đơn hàng)\n", page.Number+1, page.TotalPages, page.TotalElements)
}
