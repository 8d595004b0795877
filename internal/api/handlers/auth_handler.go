package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ona-ui/catalog/internal/api/types"
	"github.com/ona-ui/catalog/internal/services"
)

type AuthHandler struct {
	auth     services.AuthService
	validate *validator.Validate
}

func NewAuthHandler(auth services.AuthService, v *validator.Validate) *AuthHandler {
	return &AuthHandler{auth: auth, validate: v}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]any{"token": token, "user": user})
}
