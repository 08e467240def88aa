package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"storeadmin-be/internal/cache"
	"storeadmin-be/internal/invoice"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/order"
	"storeadmin-be/internal/product"
	"storeadmin-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyStore replays the first response given for a key.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*cache.StoredResponse, error)
	Save(ctx context.Context, key string, resp cache.StoredResponse) error
}

// LogoSource yields the stored file name of the company logo, if any.
type LogoSource interface {
	CurrentLogo(ctx context.Context) (string, error)
}

type OrderHandler struct {
	OrderSvc    order.Service
	Idempotency IdempotencyStore
	Logos       LogoSource
	Settings    invoice.Settings
	UploadDir   string
}

func NewOrderHandler(orderSvc order.Service, idem IdempotencyStore, logos LogoSource, settings invoice.Settings, uploadDir string) *OrderHandler {
	return &OrderHandler{
		OrderSvc:    orderSvc,
		Idempotency: idem,
		Logos:       logos,
		Settings:    settings,
		UploadDir:   uploadDir,
	}
}

func (h *OrderHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/invoice", h.Invoice)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders, err := h.OrderSvc.List(r.Context(), order.Filter{
		CustomerName: q.Get("customer_name"),
		PhoneNumber:  q.Get("phone_number"),
		Status:       q.Get("status"),
		OrderNumber:  q.Get("order_number"),
	})
	if err != nil {
		writeError(w, r, err, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	o, err := h.OrderSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to fetch order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"order": o})
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx).With(zap.String("layer", "handler"), zap.String("method", "CreateOrder"))

	key := r.Header.Get(IdempotencyKeyHeader)
	if key != "" && h.Idempotency != nil {
		stored, err := h.Idempotency.Get(ctx, key)
		if err != nil {
			log.Warn("idempotency lookup failed", zap.Error(err))
		} else if stored != nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Idempotent-Replayed", "true")
			w.WriteHeader(stored.Status)
			_, _ = w.Write(stored.Body)
			return
		}
	}

	var in order.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.OrderSvc.Create(ctx, in)
	if err != nil {
		// Business-rule failures carry a message meant for the caller.
		if errors.Is(err, product.ErrProductNotFound) || errors.Is(err, product.ErrInsufficientStock) {
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeError(w, r, err, "Failed to create order")
		return
	}

	body, err := json.Marshal(map[string]any{
		"message":      "Order created",
		"order_id":     res.OrderID,
		"order_number": res.OrderNumber,
		"total_amount": res.TotalAmount,
	})
	if err != nil {
		writeError(w, r, err, "Failed to create order")
		return
	}

	if key != "" && h.Idempotency != nil {
		if err := h.Idempotency.Save(ctx, key, cache.StoredResponse{Status: http.StatusCreated, Body: body}); err != nil {
			log.Warn("failed to store idempotent response", zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	var in order.UpdateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.OrderSvc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err, "Failed to update order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{"message": "Order updated", "order": o})
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	if err := h.OrderSvc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "Failed to delete order")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

// Invoice renders the order as a PDF attachment.
func (h *OrderHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	o, err := h.OrderSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to generate invoice")
		return
	}

	settings := h.Settings
	settings.LogoPath = h.logoPath(r.Context())

	var buf bytes.Buffer
	if err := invoice.Render(&buf, *o, settings); err != nil {
		writeError(w, r, err, "Failed to generate invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, o.OrderNumber))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// logoPath prefers the uploaded company logo over the configured file.
func (h *OrderHandler) logoPath(ctx context.Context) string {
	if h.Logos != nil {
		name, err := h.Logos.CurrentLogo(ctx)
		if err != nil {
			logger.FromCtx(ctx).Warn("failed to look up company logo", zap.Error(err))
		} else if name != "" {
			return filepath.Join(h.UploadDir, "logo", filepath.Base(name))
		}
	}
	return h.Settings.LogoPath
}
