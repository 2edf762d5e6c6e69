package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/pkg/render"
)

func (c *cli) forgotPassword(ctx context.Context, scanner *bufio.Scanner) {

	req := &models.ForgotPasswordRequest{Email: prompt(scanner, "Email: ")}

	if err := c.backend.ForgotPassword(ctx, req); err != nil {
		c.notify.Error(messageOf(err, "Không thể gửi yêu cầu"))
		return
	}

	c.notify.Success("Đã gửi email đặt lại mật khẩu, kiểm tra hộp thư của bạn")
}

func (c *cli) resetPassword(ctx context.Context, scanner *bufio.Scanner) {

	req := &models.ResetPasswordRequest{
		Token:       prompt(scanner, "Mã đặt lại (từ email): "),
		NewPassword: prompt(scanner, "Mật khẩu mới: "),
	}

	if err := c.backend.ResetPassword(ctx, req); err != nil {
		c.notify.Error(messageOf(err, "Không thể đặt lại mật khẩu"))
		return
	}

	c.notify.Success("Đặt lại mật khẩu thành công! Hãy đăng nhập.")
}

func (c *cli) changePassword(ctx context.Context, scanner *bufio.Scanner) {

	req := &models.ChangePasswordRequest{
		CurrentPassword: prompt(scanner, "Mật khẩu hiện tại: "),
		NewPassword:     prompt(scanner, "Mật khẩu mới: "),
	}

	if err := c.backend.ChangePassword(ctx, req); err != nil {
		c.notify.Error(messageOf(err, "Không thể đổi mật khẩu"))
		return
	}

	c.notify.Success("Đổi mật khẩu thành công!")
}

// updateProfile fetches the current profile first so blank answers keep the
// existing values.
func (c *cli) updateProfile(ctx context.Context, scanner *bufio.Scanner) {

	current, err := c.backend.Profile(ctx)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tải hồ sơ"))
		return
	}

	req := &models.UpdateProfileRequest{
		FullName: current.FullName,
		Phone:    current.Phone,
		Address:  current.Address,
	}

	if name := prompt(scanner, fmt.Sprintf("Họ tên [%s]: ", current.FullName)); name != "" {
		req.FullName = name
	}

	if phone := prompt(scanner, fmt.Sprintf("Số điện thoại [%s]: ", current.Phone)); phone != "" {
		req.Phone = phone
	}

	if addr := prompt(scanner, fmt.Sprintf("Địa chỉ [%s]: ", current.Address)); addr != "" {
		req.Address = addr
	}

	if _, err := c.backend.UpdateProfile(ctx, req); err != nil {
		c.notify.Error(messageOf(err, "Không thể cập nhật hồ sơ"))
		return
	}

	c.notify.Success("Cập nhật hồ sơ thành công!")
}

// Admin commands. The backend enforces the role; a plain account just gets a
// 403 back.

func (c *cli) allOrders(ctx context.Context, args []string) {

	page := intArg(args, 0, 0)

	result, err := c.backend.AllOrders(ctx, page, 10)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tải đơn hàng"))
		return
	}

	render.OrderPage(os.Stdout, result)
}

func (c *cli) setOrderStatus(ctx context.Context, args []string) {

	orderID := int64Arg(args, 0, 0)

	if orderID == 0 || len(args) < 2 {
		fmt.Println("Cách dùng: setstatus <orderId> <PENDING|CONFIRMED|SHIPPING|DELIVERED|CANCELLED>")
		return
	}

	status := models.OrderStatus(strings.ToUpper(args[1]))

	order, err := c.backend.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể cập nhật trạng thái đơn hàng"))
		return
	}

	fmt.Printf("Đơn %s → %s\n", order.OrderNumber, order.Status)
}
