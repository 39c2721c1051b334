package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nobih83/bn-storefront/internal/notify"
	"github.com/nobih83/bn-storefront/internal/orders"
)

type NotifyHandler struct {
	Repo *notify.Repo
}

func (h *NotifyHandler) Register(r *chi.Mux, admin chi.Router) {
	r.Get("/notifications", h.list)
	r.Post("/notifications/{id}/open", h.open)

	admin.Get("/notifications", h.listAll)
	admin.Post("/notifications/broadcast", h.broadcast)
}

type inboxResp struct {
	Notifications []notify.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
}

func (h *NotifyHandler) list(w http.ResponseWriter, r *http.Request) {
	viewer := orders.GuestUser
	if u, ok := CurrentUser(r); ok {
		viewer = u.ID
	}
	ctx, cancel := reqCtx(r)
	defer cancel()
	list, err := h.Repo.VisibleTo(ctx, viewer)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inboxResp{
		Notifications: list,
		Unread:        notify.UnreadCount(list, viewer),
	})
}

func (h *NotifyHandler) open(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()
	n, err := h.Repo.Open(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, notify.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "notification not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NotifyHandler) listAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()
	list, err := h.Repo.List(ctx)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *NotifyHandler) broadcast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Title == "" || req.Message == "" {
		writeErr(w, http.StatusBadRequest, "title and message required")
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()
	n, err := h.Repo.Broadcast(ctx, req.Title, req.Message)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, n)
}
