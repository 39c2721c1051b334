package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/nobih83/bn-storefront/internal/accounts"
	"github.com/nobih83/bn-storefront/internal/cart"
	"github.com/nobih83/bn-storefront/internal/catalog"
	kafkax "github.com/nobih83/bn-storefront/internal/kafka"
	"github.com/nobih83/bn-storefront/internal/orders"
	"github.com/nobih83/bn-storefront/internal/validate"
)

type OrdersHandler struct {
	Repo           *orders.Repo
	Catalog        *catalog.Repo
	Users          *accounts.Repo
	Cart           *cart.Store
	PlacedProducer *kafkax.Producer
	StatusProducer *kafkax.Producer
	Service        string
}

func (h *OrdersHandler) Register(r *chi.Mux, admin chi.Router) {
	r.Get("/cart", h.getCart)
	r.Post("/cart/items", h.addCartItem)
	r.Patch("/cart/items/{productID}", h.adjustCartItem)
	r.Delete("/cart/items/{productID}", h.removeCartItem)
	r.Delete("/cart", h.clearCart)

	r.Post("/checkout", h.checkout)
	r.Get("/orders/track", h.track)

	r.Group(func(r chi.Router) {
		r.Use(RequireUser)
		r.Get("/me/orders", h.myOrders)
	})

	admin.Get("/orders", h.listOrders)
	admin.Put("/orders/{id}/status", h.updateStatus)
	admin.Get("/stats", h.stats)
}

type cartResp struct {
	Lines    []cart.Line `json:"lines"`
	Subtotal int64       `json:"subtotal"`
}

func (h *OrdersHandler) getCart(w http.ResponseWriter, r *http.Request) {
	key := cartKey(r)
	if key == "" {
		writeErr(w, http.StatusBadRequest, "missing cart token")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()
	lines, err := h.Cart.Get(ctx, key)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cartResp{Lines: lines, Subtotal: cart.Subtotal(lines)})
}

func (h *OrdersHandler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int64  `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	key := cartKey(r)
	if key == "" {
		writeErr(w, http.StatusBadRequest, "missing cart token")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	p, err := h.Catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "product not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	lines, err := h.Cart.Add(ctx, key, p, req.Quantity)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cartResp{Lines: lines, Subtotal: cart.Subtotal(lines)})
}

func (h *OrdersHandler) adjustCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	key := cartKey(r)
	if key == "" {
		writeErr(w, http.StatusBadRequest, "missing cart token")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()
	lines, err := h.Cart.Adjust(ctx, key, chi.URLParam(r, "productID"), req.Delta)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cartResp{Lines: lines, Subtotal: cart.Subtotal(lines)})
}

func (h *OrdersHandler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	key := cartKey(r)
	if key == "" {
		writeErr(w, http.StatusBadRequest, "missing cart token")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()
	lines, err := h.Cart.Remove(ctx, key, chi.URLParam(r, "productID"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cartResp{Lines: lines, Subtotal: cart.Subtotal(lines)})
}

func (h *OrdersHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	key := cartKey(r)
	if key == "" {
		writeErr(w, http.StatusBadRequest, "missing cart token")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()
	if err := h.Cart.Clear(ctx, key); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkoutReq struct {
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Email   string      `json:"email"`
	Address string      `json:"address"`
	Zone    orders.Zone `json:"zone"`
}

func (h *OrdersHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	key := cartKey(r)
	if key == "" {
		writeErr(w, http.StatusBadRequest, "missing cart token")
		return
	}

	// signed-in users may leave contact fields blank
	userID := orders.GuestUser
	if u, ok := CurrentUser(r); ok {
		userID = u.ID
		if req.Name == "" {
			req.Name = u.Name
		}
		if req.Phone == "" {
			req.Phone = u.Phone
		}
		if req.Email == "" {
			req.Email = u.Email
		}
	}

	charge, ok := orders.DeliveryCharge(req.Zone)
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown delivery zone")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	lines, err := h.Cart.Get(ctx, key)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	contact := validate.Contact{Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	if err := validate.Checkout(contact, len(lines)); err != nil {
		var ferr *validate.FieldError
		if errors.As(err, &ferr) {
			writeValidationErr(w, ferr)
			return
		}
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]orders.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, orders.Item{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.Product.Price,
		})
	}
	subtotal := orders.Subtotal(items)

	o, err := h.Repo.Create(ctx, orders.Order{
		UserID:         userID,
		CustomerName:   req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		Items:          items,
		Subtotal:       subtotal,
		DeliveryCharge: charge,
		Total:          subtotal + charge,
	})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.Cart.Clear(ctx, key); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.publish(h.PlacedProducer, orders.EventOrderPlaced, o.ID, orders.OrderPlacedPayload{
		OrderID: o.ID,
		UserID:  o.UserID,
		Total:   o.Total,
	})

	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) track(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeErr(w, http.StatusBadRequest, "missing query")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()
	o, err := h.Repo.Track(ctx, q)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "order not found, check id or phone number")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) myOrders(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r)
	ctx, cancel := reqCtx(r)
	defer cancel()
	list, err := h.Repo.ListByOwner(ctx, u.ID, u.Phone)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()
	list, err := h.Repo.List(ctx)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	next, ok := orders.ParseStatus(req.Status)
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown status")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	o, err := h.Repo.UpdateStatus(ctx, chi.URLParam(r, "id"), next)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNotFound):
			writeErr(w, http.StatusNotFound, "order not found")
		case errors.Is(err, orders.ErrBadTransition):
			writeErr(w, http.StatusConflict, "status transition not allowed")
		default:
			writeErr(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.publish(h.StatusProducer, orders.EventOrderStatusChanged, o.ID, orders.OrderStatusChangedPayload{
		OrderID: o.ID,
		UserID:  o.UserID,
		Status:  o.Status,
	})

	writeJSON(w, http.StatusOK, o)
}

type statsResp struct {
	orders.Stats
	Clients int64 `json:"clients"`
}

func (h *OrdersHandler) stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()
	s, err := h.Repo.Stats(ctx)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	clients, err := h.Users.Count(ctx)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statsResp{Stats: s, Clients: clients})
}

func (h *OrdersHandler) publish(p *kafkax.Producer, eventType, orderID string, payload any) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
