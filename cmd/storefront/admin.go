package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/pkg/render"
	"github.com/shopspring/decimal"
)

// Back-office catalog commands. As with the order commands, the backend
// enforces the admin role; a plain account gets a 403 back.

func (c *cli) addProduct(ctx context.Context, scanner *bufio.Scanner) {

	req := &models.CreateProductRequest{
		Name:        prompt(scanner, "Tên sản phẩm: "),
		Description: prompt(scanner, "Mô tả: "),
		ImageURL:    prompt(scanner, "Ảnh (URL): "),
	}

	categoryID, ok := promptInt64(scanner, "Mã danh mục: ")
	if !ok {
		return
	}

	req.CategoryID = categoryID

	price, ok := promptDecimal(scanner, "Giá: ")
	if !ok {
		return
	}

	req.Price = price

	stock, ok := promptInt(scanner, "Tồn kho: ")
	if !ok {
		return
	}

	req.StockQuantity = stock

	product, err := c.backend.CreateProduct(ctx, req)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tạo sản phẩm"))
		return
	}

	c.notify.Success("Đã tạo sản phẩm!")
	render.Product(os.Stdout, product)
}

// editProduct prompts per field; a blank answer leaves that field unchanged.
func (c *cli) editProduct(ctx context.Context, scanner *bufio.Scanner, args []string) {

	id := int64Arg(args, 0, 0)
	if id == 0 {
		fmt.Println("Cách dùng: editproduct <id>")
		return
	}

	req := &models.UpdateProductRequest{}

	if name := prompt(scanner, "Tên mới (bỏ trống giữ nguyên): "); name != "" {
		req.Name = &name
	}

	if raw := prompt(scanner, "Giá mới (bỏ trống giữ nguyên): "); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Println("Giá không hợp lệ")
			return
		}

		req.Price = &price
	}

	if raw := prompt(scanner, "Tồn kho mới (bỏ trống giữ nguyên): "); raw != "" {
		stock := intArg([]string{raw}, 0, -1)
		if stock < 0 {
			fmt.Println("Tồn kho không hợp lệ")
			return
		}

		req.StockQuantity = &stock
	}

	if status := prompt(scanner, "Trạng thái ACTIVE/INACTIVE (bỏ trống giữ nguyên): "); status != "" {
		req.Status = &status
	}

	product, err := c.backend.UpdateProduct(ctx, id, req)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể cập nhật sản phẩm"))
		return
	}

	c.notify.Success("Đã cập nhật sản phẩm!")
	render.Product(os.Stdout, product)
}

func (c *cli) deleteProduct(ctx context.Context, args []string) {

	id := int64Arg(args, 0, 0)
	if id == 0 {
		fmt.Println("Cách dùng: delproduct <id>")
		return
	}

	if err := c.backend.DeleteProduct(ctx, id); err != nil {
		c.notify.Error(messageOf(err, "Không thể xóa sản phẩm"))
		return
	}

	c.notify.Success("Đã xóa sản phẩm!")
}

func (c *cli) addCategory(ctx context.Context, scanner *bufio.Scanner) {

	category := &models.Category{
		Name:        prompt(scanner, "Tên danh mục: "),
		Description: prompt(scanner, "Mô tả: "),
	}

	created, err := c.backend.CreateCategory(ctx, category)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tạo danh mục"))
		return
	}

	c.notify.Success(fmt.Sprintf("Đã tạo danh mục #%d", created.ID))
}

func (c *cli) editCategory(ctx context.Context, scanner *bufio.Scanner, args []string) {

	id := int64Arg(args, 0, 0)
	if id == 0 {
		fmt.Println("Cách dùng: editcategory <id>")
		return
	}

	category := &models.Category{
		ID:          id,
		Name:        prompt(scanner, "Tên danh mục: "),
		Description: prompt(scanner, "Mô tả: "),
	}

	if _, err := c.backend.UpdateCategory(ctx, id, category); err != nil {
		c.notify.Error(messageOf(err, "Không thể cập nhật danh mục"))
		return
	}

	c.notify.Success("Đã cập nhật danh mục!")
}

func (c *cli) deleteCategory(ctx context.Context, args []string) {

	id := int64Arg(args, 0, 0)
	if id == 0 {
		fmt.Println("Cách dùng: delcategory <id>")
		return
	}

	if err := c.backend.DeleteCategory(ctx, id); err != nil {
		c.notify.Error(messageOf(err, "Không thể xóa danh mục"))
		return
	}

	c.notify.Success("Đã xóa danh mục!")
}

func (c *cli) listPromotions(ctx context.Context) {

	promotions, err := c.backend.ListPromotions(ctx)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tải khuyến mãi"))
		return
	}

	for _, p := range promotions {
		state := "tắt"
		if p.Active {
			state = "bật"
		}

		fmt.Printf("#%d %s (%s %s) [%s] %s → %s\n",
			p.ID, p.Code, p.DiscountType, p.DiscountValue, state,
			p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
	}
}

func (c *cli) addPromotion(ctx context.Context, scanner *bufio.Scanner) {

	req := &models.CreatePromotionRequest{
		Code:        prompt(scanner, "Mã khuyến mãi: "),
		Description: prompt(scanner, "Mô tả: "),
		Active:      true,
	}

	if prompt(scanner, "Loại [1] phần trăm  [2] số tiền cố định: ") == "2" {
		req.DiscountType = models.DiscountTypeFixed
	} else {
		req.DiscountType = models.DiscountTypePercentage
	}

	value, ok := promptDecimal(scanner, "Giá trị giảm: ")
	if !ok {
		return
	}

	req.DiscountValue = value

	if raw := prompt(scanner, "Giảm tối đa (bỏ trống nếu không giới hạn): "); raw != "" {
		maxDiscount, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Println("Số tiền không hợp lệ")
			return
		}

		req.MaxDiscountAmount = &maxDiscount
	}

	start, ok := promptDate(scanner, "Ngày bắt đầu (YYYY-MM-DD): ")
	if !ok {
		return
	}

	end, ok := promptDate(scanner, "Ngày kết thúc (YYYY-MM-DD): ")
	if !ok {
		return
	}

	req.StartDate = start
	req.EndDate = end

	promotion, err := c.backend.CreatePromotion(ctx, req)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tạo khuyến mãi"))
		return
	}

	c.notify.Success(fmt.Sprintf("Đã tạo khuyến mãi %s", promotion.Code))
}

func (c *cli) editPromotion(ctx context.Context, scanner *bufio.Scanner, args []string) {

	id := int64Arg(args, 0, 0)
	if id == 0 {
		fmt.Println("Cách dùng: editpromo <id>")
		return
	}

	req := &models.UpdatePromotionRequest{}

	if raw := prompt(scanner, "Giá trị giảm mới (bỏ trống giữ nguyên): "); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Println("Giá trị không hợp lệ")
			return
		}

		req.DiscountValue = &value
	}

	switch prompt(scanner, "Kích hoạt? [y/n/bỏ trống giữ nguyên]: ") {
	case "y":
		active := true
		req.Active = &active
	case "n":
		active := false
		req.Active = &active
	}

	if _, err := c.backend.UpdatePromotion(ctx, id, req); err != nil {
		c.notify.Error(messageOf(err, "Không thể cập nhật khuyến mãi"))
		return
	}

	c.notify.Success("Đã cập nhật khuyến mãi!")
}

func (c *cli) deletePromotion(ctx context.Context, args []string) {

	id := int64Arg(args, 0, 0)
	if id == 0 {
		fmt.Println("Cách dùng: delpromo <id>")
		return
	}

	if err := c.backend.DeletePromotion(ctx, id); err != nil {
		c.notify.Error(messageOf(err, "Không thể xóa khuyến mãi"))
		return
	}

	c.notify.Success("Đã xóa khuyến mãi!")
}

func promptInt(scanner *bufio.Scanner, label string) (int, bool) {

	value := intArg([]string{prompt(scanner, label)}, 0, -1)
	if value < 0 {
		fmt.Println("Giá trị không hợp lệ")
		return 0, false
	}

	return value, true
}

func promptInt64(scanner *bufio.Scanner, label string) (int64, bool) {

	value := int64Arg([]string{prompt(scanner, label)}, 0, 0)
	if value == 0 {
		fmt.Println("Giá trị không hợp lệ")
		return 0, false
	}

	return value, true
}

func promptDecimal(scanner *bufio.Scanner, label string) (decimal.Decimal, bool) {

	value, err := decimal.NewFromString(prompt(scanner, label))
	if err != nil {
		fmt.Println("Số tiền không hợp lệ")
		return decimal.Zero, false
	}

	return value, true
}

func promptDate(scanner *bufio.Scanner, label string) (time.Time, bool) {

	value, err := time.Parse("2006-01-02", prompt(scanner, label))
	if err != nil {
		fmt.Println("Ngày không hợp lệ, dùng dạng YYYY-MM-DD")
		return time.Time{}, false
	}

	return value, true
}
