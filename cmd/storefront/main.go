package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/api"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/cache"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/cart"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/checkout"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/config"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/directory"
	apperrors "github.com/nguyentunghieu19/nhom7-ptdacntt/internal/errors"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/health"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/metrics"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/session"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/trace"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/pkg/render"
	"github.com/redis/go-redis/v9"
)

// toastNotifier is the terminal stand-in for the web client's toasts.
type toastNotifier struct{}

func (toastNotifier) Success(message string) { fmt.Println("✅ " + message) }
func (toastNotifier) Error(message string)   { fmt.Println("❌ " + message) }

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	// Tracing setup
	tp, err := trace.InitTracer(ctx, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		slog.Warn("⚠️ Tracing disabled", slog.String("error", err.Error()))
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			_ = tp.Shutdown(shutdownCtx)
		}()
	}

	// Directory cache setup
	var directoryCache cache.Cache

	if cfg.Cache.Backend == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		directoryCache = cache.NewRedisCache(redisClient, &cfg.Cache)
	} else {
		directoryCache = cache.NewMemoryCache()
	}

	defer func() {
		if err := directoryCache.Close(); err != nil {
			slog.Error("⚠️ Error closing cache", slog.String("error", err.Error()))
		}
	}()

	// Session setup (persisted bearer token, localStorage analogue)
	store, err := session.NewTokenStore(cfg.Session.TokenPath)
	if err != nil {
		slog.Error("❌ Error preparing session storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	authSession := session.New(store)

	notifier := toastNotifier{}

	// API client: any 401 clears the stored credential, the forced-sign-out
	// equivalent of the web client's redirect to /login.
	backend := api.NewClient(&cfg.Backend, authSession, api.WithUnauthorizedHook(func() {
		authSession.Expire()
		notifier.Error("Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại")
	}))

	directoryClient := directory.NewClient(&cfg.Directory, directoryCache, cfg.Cache.DefaultTTL)
	cartSession := cart.NewSession(backend, authSession)
	orchestrator := checkout.NewOrchestrator(backend, cartSession, notifier)
	returnHandler := checkout.NewReturnHandler(backend, notifier)

	paymentDone := make(chan *models.PaymentVerification, 1)
	returnHandler.OnResult = func(result *models.PaymentVerification) {
		select {
		case paymentDone <- result:
		default:
		}
	}

	// Local listener: payment-gateway return redirect, health, metrics.
	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		Backend:   backend,
		Directory: directoryClient,
	})
	if err != nil {
		slog.Error("❌ Error building health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	routerMux := http.NewServeMux()
	routerMux.Handle("GET /payment/return", returnHandler)
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	server := http.Server{
		Addr:    cfg.Callback.Addr,
		Handler: routerMux,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Callback listener failed", slog.String("error", err.Error()))
		}
	}()

	slog.Info("🚀 Storefront started",
		slog.String("env", cfg.Env),
		slog.String("backend", backend.BaseURL()),
		slog.String("callback", cfg.Callback.Addr))

	if authSession.IsAuthenticated() {
		cartSession.Fetch(ctx)

		if user := authSession.User(); user != nil {
			fmt.Printf("Xin chào, %s!\n", user.FullName)
		}
	}

	app := &cli{
		backend:      backend,
		auth:         authSession,
		cart:         cartSession,
		checkout:     orchestrator,
		directory:    directoryClient,
		notify:       notifier,
		paymentDone:  paymentDone,
		callbackAddr: cfg.Callback.Addr,
	}

	app.run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Callback listener shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Callback listener shut down gracefully")
	}
}

type cli struct {
	backend      *api.Client
	auth         *session.Session
	cart         *cart.Session
	checkout     *checkout.Orchestrator
	directory    *directory.Client
	notify       toastNotifier
	paymentDone  chan *models.PaymentVerification
	callbackAddr string
}

func (c *cli) run(ctx context.Context) {

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Gõ 'help' để xem danh sách lệnh.")

	for {
		fmt.Printf("[giỏ: %d] > ", c.cart.ItemCount())

		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		command, args := fields[0], fields[1:]

		switch command {
		case "help":
			c.printHelp()
		case "register":
			c.register(ctx, scanner)
		case "login":
			c.login(ctx, scanner)
		case "logout":
			c.auth.SignOut()
			fmt.Println("Đã đăng xuất")
		case "whoami":
			if user := c.auth.User(); user != nil {
				fmt.Printf("%s (%s)\n", user.FullName, user.Email)
			} else {
				fmt.Println("Chưa đăng nhập")
			}
		case "products":
			c.products(ctx, args)
		case "search":
			c.search(ctx, args)
		case "product":
			c.product(ctx, args)
		case "categories":
			c.categories(ctx)
		case "cart":
			render.Cart(os.Stdout, c.cart.Snapshot())
		case "add":
			c.addToCart(ctx, args)
		case "update":
			c.updateCartItem(ctx, args)
		case "dec":
			c.decrementCartItem(ctx, args)
		case "remove":
			c.removeCartItem(ctx, args)
		case "clearcart":
			c.reportResult(c.cart.Clear(ctx))
		case "promos":
			c.promotions(ctx)
		case "checkout":
			c.runCheckout(ctx, scanner)
		case "orders":
			c.orders(ctx, args)
		case "order":
			c.order(ctx, args)
		case "profile":
			c.profile(ctx)
		case "updateprofile":
			c.updateProfile(ctx, scanner)
		case "changepw":
			c.changePassword(ctx, scanner)
		case "forgotpw":
			c.forgotPassword(ctx, scanner)
		case "resetpw":
			c.resetPassword(ctx, scanner)
		case "allorders":
			c.allOrders(ctx, args)
		case "setstatus":
			c.setOrderStatus(ctx, args)
		case "addproduct":
			c.addProduct(ctx, scanner)
		case "editproduct":
			c.editProduct(ctx, scanner, args)
		case "delproduct":
			c.deleteProduct(ctx, args)
		case "addcategory":
			c.addCategory(ctx, scanner)
		case "editcategory":
			c.editCategory(ctx, scanner, args)
		case "delcategory":
			c.deleteCategory(ctx, args)
		case "listpromos":
			c.listPromotions(ctx)
		case "addpromo":
			c.addPromotion(ctx, scanner)
		case "editpromo":
			c.editPromotion(ctx, scanner, args)
		case "delpromo":
			c.deletePromotion(ctx, args)
		case "quit", "exit":
			return
		default:
			fmt.Println("Lệnh không hợp lệ, gõ 'help' để xem danh sách")
		}
	}
}

func (c *cli) printHelp() {
	fmt.Println(`Lệnh:
  register | login | logout | whoami
  products [trang] | search <từ khóa> | product <id> | categories
  cart | add <productId> [số lượng] | update <itemId> <số lượng>
  dec <itemId> | remove <itemId> | clearcart
  promos | checkout
  orders [trang] | order <id>
  profile | updateprofile | changepw | forgotpw | resetpw
  allorders [trang] | setstatus <orderId> <trạng thái>   (quản trị)
  addproduct | editproduct <id> | delproduct <id>        (quản trị)
  addcategory | editcategory <id> | delcategory <id>     (quản trị)
  listpromos | addpromo | editpromo <id> | delpromo <id> (quản trị)
  quit`)
}

func (c *cli) reportResult(result cart.Result) {
	if result.Success {
		if result.Message != "" {
			c.notify.Success(result.Message)
		}
	} else {
		c.notify.Error(result.Message)
	}
}

func prompt(scanner *bufio.Scanner, label string) string {

	fmt.Print(label)

	if !scanner.Scan() {
		return ""
	}

	return strings.TrimSpace(scanner.Text())
}

func (c *cli) register(ctx context.Context, scanner *bufio.Scanner) {

	req := &models.RegisterRequest{
		FullName: prompt(scanner, "Họ tên: "),
		Email:    prompt(scanner, "Email: "),
		Password: prompt(scanner, "Mật khẩu: "),
	}

	if _, err := c.backend.Register(ctx, req); err != nil {
		c.notify.Error(messageOf(err, "Đăng ký thất bại"))
		return
	}

	c.notify.Success("Đăng ký thành công! Hãy đăng nhập.")
}

func (c *cli) login(ctx context.Context, scanner *bufio.Scanner) {

	req := &models.LoginRequest{
		Email:    prompt(scanner, "Email: "),
		Password: prompt(scanner, "Mật khẩu: "),
	}

	resp, err := c.backend.Login(ctx, req)
	if err != nil {
		c.notify.Error(messageOf(err, "Đăng nhập thất bại"))
		return
	}

	// SignIn triggers the cart fetch through the auth-change listener.
	c.auth.SignIn(resp.Token, resp.User)

	if resp.User != nil {
		fmt.Printf("Xin chào, %s!\n", resp.User.FullName)
	}
}

func (c *cli) products(ctx context.Context, args []string) {

	page := intArg(args, 0, 0)

	result, err := c.backend.ListProducts(ctx, page, 10)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tải danh sách sản phẩm"))
		return
	}

	render.ProductPage(os.Stdout, result)
}

func (c *cli) search(ctx context.Context, args []string) {

	if len(args) == 0 {
		fmt.Println("Cách dùng: search <từ khóa>")
		return
	}

	result, err := c.backend.SearchProducts(ctx, &models.SearchProductsParams{
		Keyword: strings.Join(args, " "),
		Size:    10,
	})
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tìm kiếm sản phẩm"))
		return
	}

	render.ProductPage(os.Stdout, result)
}

func (c *cli) product(ctx context.Context, args []string) {

	id := int64Arg(args, 0, 0)
	if id == 0 {
		fmt.Println("Cách dùng: product <id>")
		return
	}

	product, err := c.backend.GetProduct(ctx, id)
	if err != nil {
		c.notify.Error(messageOf(err, "Không tìm thấy sản phẩm"))
		return
	}

	render.Product(os.Stdout, product)

	related, err := c.backend.RelatedProducts(ctx, id, 0, 4)
	if err == nil && len(related.Content) > 0 {
		fmt.Println("Sản phẩm liên quan:")
		render.ProductPage(os.Stdout, related)
	}
}

func (c *cli) categories(ctx context.Context) {

	categories, err := c.backend.ListCategories(ctx)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tải danh mục"))
		return
	}

	for _, category := range categories {
		fmt.Printf("#%d %s\n", category.ID, category.Name)
	}
}

func (c *cli) addToCart(ctx context.Context, args []string) {

	productID := int64Arg(args, 0, 0)
	if productID == 0 {
		fmt.Println("Cách dùng: add <productId> [số lượng]")
		return
	}

	quantity := intArg(args, 1, 1)

	c.reportResult(c.cart.AddItem(ctx, productID, quantity))
}

func (c *cli) updateCartItem(ctx context.Context, args []string) {

	itemID := int64Arg(args, 0, 0)
	quantity := intArg(args, 1, 0)

	if itemID == 0 || quantity == 0 {
		fmt.Println("Cách dùng: update <itemId> <số lượng>")
		return
	}

	c.reportResult(c.cart.UpdateItem(ctx, itemID, quantity))
}

// decrementCartItem clamps at quantity 1: a line at 1 stays at 1 and no
// request is sent.
func (c *cli) decrementCartItem(ctx context.Context, args []string) {

	itemID := int64Arg(args, 0, 0)
	if itemID == 0 {
		fmt.Println("Cách dùng: dec <itemId>")
		return
	}

	snapshot := c.cart.Snapshot()
	if snapshot == nil {
		fmt.Println("Giỏ hàng trống")
		return
	}

	for _, item := range snapshot.Items {
		if item.ID == itemID {
			if item.Quantity <= 1 {
				fmt.Println("Số lượng tối thiểu là 1, dùng 'remove' để xóa")
				return
			}

			c.reportResult(c.cart.UpdateItem(ctx, itemID, item.Quantity-1))

			return
		}
	}

	fmt.Println("Không tìm thấy sản phẩm trong giỏ")
}

func (c *cli) removeCartItem(ctx context.Context, args []string) {

	itemID := int64Arg(args, 0, 0)
	if itemID == 0 {
		fmt.Println("Cách dùng: remove <itemId>")
		return
	}

	c.reportResult(c.cart.RemoveItem(ctx, itemID))
}

func (c *cli) promotions(ctx context.Context) {

	promotions, err := c.backend.ActivePromotions(ctx)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tải khuyến mãi"))
		return
	}

	for _, p := range promotions {
		if p.DiscountType == models.DiscountTypePercentage {
			fmt.Printf("%s — giảm %s%%\n", p.Code, p.DiscountValue)
		} else {
			fmt.Printf("%s — giảm %s\n", p.Code, render.VND(p.DiscountValue))
		}
	}
}

func (c *cli) orders(ctx context.Context, args []string) {

	page := intArg(args, 0, 0)

	result, err := c.backend.MyOrders(ctx, page, 10)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tải đơn hàng"))
		return
	}

	render.OrderPage(os.Stdout, result)
}

func (c *cli) order(ctx context.Context, args []string) {

	id := int64Arg(args, 0, 0)
	if id == 0 {
		fmt.Println("Cách dùng: order <id>")
		return
	}

	order, err := c.backend.GetOrder(ctx, id)
	if err != nil {
		c.notify.Error(messageOf(err, "Không tìm thấy đơn hàng"))
		return
	}

	render.Order(os.Stdout, order)
}

func (c *cli) profile(ctx context.Context) {

	user, err := c.backend.Profile(ctx)
	if err != nil {
		c.notify.Error(messageOf(err, "Không thể tải hồ sơ"))
		return
	}

	fmt.Printf("%s — %s — %s\n", user.FullName, user.Email, user.Phone)
}

func intArg(args []string, index, fallback int) int {

	if index >= len(args) {
		return fallback
	}

	value, err := strconv.Atoi(args[index])
	if err != nil {
		return fallback
	}

	return value
}

func int64Arg(args []string, index int, fallback int64) int64 {

	if index >= len(args) {
		return fallback
	}

	value, err := strconv.ParseInt(args[index], 10, 64)
	if err != nil {
		return fallback
	}

	return value
}

func messageOf(err error, fallback string) string {
	return apperrors.MessageOr(err, fallback)
}
