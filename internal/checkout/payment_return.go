package checkout

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/errors"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

// ReturnHandler terminates the external payment flow: the gateway redirects
// the browser to the local listener, and the full query payload is forwarded
// verbatim to the backend for verification.
type ReturnHandler struct {
	backend  Backend
	notifier Notifier

	// OnResult, when set, receives the verification verdict so the front end
	// can navigate to the order list on success.
	OnResult func(result *models.PaymentVerification)
}

func NewReturnHandler(backend Backend, notifier Notifier) *ReturnHandler {
	return &ReturnHandler{backend: backend, notifier: notifier}
}

// Verify relays the gateway's return parameters to the backend. An empty
// parameter set is an immediate failure: there is no real payload to verify,
// so no call is issued.
func (h *ReturnHandler) Verify(ctx context.Context, params url.Values) *models.PaymentVerification {

	if len(params) == 0 {
		slog.Warn("Payment return received without query parameters")

		return &models.PaymentVerification{
			Success: false,
			Message: "Không nhận được dữ liệu thanh toán",
		}
	}

	result, err := h.backend.VerifyVNPayReturn(ctx, params)
	if err != nil {
		slog.Error("Payment verification failed", slog.String("error", err.Error()))

		return &models.PaymentVerification{
			Success: false,
			Message: errors.MessageOr(err, "Có lỗi xảy ra khi xác thực thanh toán"),
		}
	}

	return result
}

// ServeHTTP handles GET /payment/return on the local listener.
func (h *ReturnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	result := h.Verify(r.Context(), r.URL.Query())

	if result.Success {
		h.notifier.Success("Thanh toán thành công!")
	} else {
		h.notifier.Error("Thanh toán thất bại!")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if result.Success {
		fmt.Fprintf(w, "<h1>Thanh toán thành công!</h1><p>Đơn hàng %s đã được thanh toán.</p>", html.EscapeString(result.OrderNumber))
	} else {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "<h1>Thanh toán thất bại!</h1><p>%s</p>", html.EscapeString(result.Message))
	}

	if h.OnResult != nil {
		h.OnResult(result)
	}
}
