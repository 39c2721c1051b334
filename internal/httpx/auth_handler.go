package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nobih83/bn-storefront/internal/accounts"
	"github.com/nobih83/bn-storefront/internal/validate"
)

type AuthHandler struct {
	Service *accounts.Service
	Users   *accounts.Repo
}

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResp struct {
	User  accounts.User `json:"user"`
	Token string        `json:"token"`
}

func (h *AuthHandler) Register(r *chi.Mux, admin chi.Router) {
	r.Post("/auth/signup", h.signup)
	r.Post("/auth/login", h.login)
	r.Post("/auth/logout", h.logout)
	r.Get("/me", h.me)

	admin.Get("/users", h.listUsers)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	u, token, err := h.Service.Signup(ctx, req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		var ferr *validate.FieldError
		if errors.As(err, &ferr) {
			writeValidationErr(w, ferr)
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, authResp{User: u, Token: token})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := reqCtx(r)
	defer cancel()

	u, token, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			writeErr(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, authResp{User: u, Token: token})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	if token == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	ctx, cancel := reqCtx(r)
	defer cancel()
	if err := h.Service.Logout(ctx, token); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r)
	defer cancel()
	list, err := h.Users.List(ctx)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func reqCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}
