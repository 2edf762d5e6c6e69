package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/address"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/checkout"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/directory"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/pkg/render"
)

// runCheckout walks the user through the same flow as the web checkout page:
// address cascade, phone, note, promotion code, payment method, submit.
func (c *cli) runCheckout(ctx context.Context, scanner *bufio.Scanner) {

	if !c.auth.IsAuthenticated() {
		fmt.Println("Vui lòng đăng nhập trước khi đặt hàng")
		return
	}

	snapshot := c.cart.Snapshot()
	if snapshot == nil || len(snapshot.Items) == 0 {
		fmt.Println("Giỏ hàng trống")
		return
	}

	render.Cart(os.Stdout, snapshot)

	composer := address.NewComposer(c.directory, nil)
	composer.Load(ctx)

	if !c.pickProvince(ctx, scanner, composer) {
		return
	}

	if !c.pickDistrict(ctx, scanner, composer) {
		return
	}

	if !c.pickWard(scanner, composer) {
		return
	}

	composer.SetStreet(prompt(scanner, "Số nhà, tên đường: "))

	selection := composer.Selection()
	fmt.Println("Địa chỉ giao hàng: " + selection.FullAddress)

	phone := prompt(scanner, "Số điện thoại: ")
	note := prompt(scanner, "Ghi chú (bỏ trống nếu không có): ")

	if code := prompt(scanner, "Mã khuyến mãi (bỏ trống nếu không có): "); code != "" {
		c.checkout.ApplyCode(ctx, code)
	}

	totalAmount := snapshot.TotalAmount
	discount := c.checkout.EstimateDiscount(totalAmount)

	fmt.Printf("Tạm tính: %s\n", render.VND(totalAmount))

	if !discount.IsZero() {
		fmt.Printf("Giảm giá: -%s\n", render.VND(discount))
	}

	fmt.Printf("Thành tiền: %s\n", render.VND(c.checkout.EstimateFinalAmount(totalAmount)))

	method := models.PaymentMethodCOD

	if prompt(scanner, "Thanh toán [1] COD  [2] VNPAY: ") == "2" {
		method = models.PaymentMethodVNPay
	}

	if prompt(scanner, "Xác nhận đặt hàng? [y/N]: ") != "y" {
		fmt.Println("Đã hủy")
		return
	}

	outcome, err := c.checkout.Submit(ctx, &checkout.Draft{
		Address:       selection,
		PhoneNumber:   phone,
		Note:          note,
		PaymentMethod: method,
	})
	if err != nil {
		for field, message := range c.checkout.FieldErrors() {
			fmt.Printf("  %s: %s\n", field, message)
		}

		return
	}

	if outcome.RedirectURL != "" {
		c.awaitPayment(outcome)
		return
	}

	fmt.Printf("Mã đơn hàng: %s\n", outcome.Order.OrderNumber)
}

// awaitPayment hands the user to the gateway and waits for its return
// redirect to hit the local listener.
func (c *cli) awaitPayment(outcome *checkout.Outcome) {

	fmt.Println("Mở liên kết sau để thanh toán:")
	fmt.Println("  " + outcome.RedirectURL)
	fmt.Printf("Đang chờ kết quả thanh toán trên http://%s/payment/return ...\n", c.callbackAddr)

	select {
	case result := <-c.paymentDone:
		if result.Success {
			fmt.Printf("Mã đơn hàng: %s\n", result.OrderNumber)
		}
	case <-time.After(15 * time.Minute):
		fmt.Println("Hết thời gian chờ thanh toán, kiểm tra lại trong mục đơn hàng")
	}
}

func (c *cli) pickProvince(ctx context.Context, scanner *bufio.Scanner, composer *address.Composer) bool {

	code, ok := pickUnit(scanner, "Tỉnh/Thành phố", composer.Provinces())
	if !ok {
		return false
	}

	composer.SelectProvince(ctx, code)

	return true
}

func (c *cli) pickDistrict(ctx context.Context, scanner *bufio.Scanner, composer *address.Composer) bool {

	code, ok := pickUnit(scanner, "Quận/Huyện", composer.Districts())
	if !ok {
		return false
	}

	composer.SelectDistrict(ctx, code)

	return true
}

func (c *cli) pickWard(scanner *bufio.Scanner, composer *address.Composer) bool {

	code, ok := pickUnit(scanner, "Phường/Xã", composer.Wards())
	if !ok {
		return false
	}

	composer.SelectWard(code)

	return true
}

// pickUnit lists the options and reads a code. Entering nothing cancels the
// whole flow.
func pickUnit(scanner *bufio.Scanner, label string, units []directory.Unit) (int, bool) {

	if len(units) == 0 {
		fmt.Printf("Không tải được danh sách %s\n", label)
		return 0, false
	}

	for _, unit := range units {
		fmt.Printf("  [%d] %s\n", unit.Code, unit.Name)
	}

	for {
		input := prompt(scanner, label+" (nhập mã): ")
		if input == "" {
			fmt.Println("Đã hủy")
			return 0, false
		}

		code, err := strconv.Atoi(input)
		if err != nil {
			fmt.Println("Mã không hợp lệ")
			continue
		}

		for _, unit := range units {
			if unit.Code == code {
				return code, true
			}
		}

		fmt.Println("Mã không có trong danh sách")
	}
}
