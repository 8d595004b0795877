package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ona-ui/catalog/internal/api/middleware"
	"github.com/ona-ui/catalog/internal/api/types"
	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/repository"
	"github.com/ona-ui/catalog/internal/services"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

type LicensesHandler struct {
	licenses services.LicenseService
	validate *validator.Validate
}

func NewLicensesHandler(licenses services.LicenseService, v *validator.Validate) *LicensesHandler {
	return &LicensesHandler{licenses: licenses, validate: v}
}

func (h *LicensesHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req types.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadJSON(w)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}
	seats := req.Seats
	if seats == 0 {
		seats = 1
	}

	sess := middleware.GetSession(r.Context())
	session, license, err := h.licenses.Checkout(r.Context(), sess.UserID, models.LicenseTier(req.Tier), seats)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]any{"checkout": session, "license": license})
}

// ListMine returns the caller's licenses, active or not.
func (h *LicensesHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	items, err := h.licenses.ListByUser(r.Context(), sess.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, items)
}

func (h *LicensesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	l, err := h.licenses.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	sess := middleware.GetSession(r.Context())
	if l.UserID != sess.UserID && !sess.IsAdmin {
		respondError(w, appErr.New(appErr.CodeForbidden, "license belongs to another user"))
		return
	}
	respondOK(w, l)
}

func (h *LicensesHandler) ClaimSeat(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	sess := middleware.GetSession(r.Context())
	if err := h.licenses.ClaimSeat(r.Context(), sess.UserID, id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "seat claimed")
}

func (h *LicensesHandler) ReleaseSeat(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	sess := middleware.GetSession(r.Context())
	if err := h.licenses.ReleaseSeat(r.Context(), sess.UserID, id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "seat released")
}

// List is admin-only and supports userId, tier and paymentStatus filters.
func (h *LicensesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID, err := optUUID(q, "userId")
	if err != nil {
		respondError(w, err)
		return
	}
	f := repository.LicenseFilters{UserID: userID}
	if t := q.Get("tier"); t != "" {
		tier := models.LicenseTier(t)
		f.Tier = &tier
	}
	if p := q.Get("paymentStatus"); p != "" {
		status := models.PaymentStatus(p)
		f.PaymentStatus = &status
	}

	opts, err := pageOptions(q, h.validate)
	if err != nil {
		respondValidation(w, err)
		return
	}
	page, err := h.licenses.List(r.Context(), opts, f)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, page)
}

// MarkPaid is the admin escape hatch for settling a license when the payment
// provider callback was missed.
func (h *LicensesHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.licenses.MarkPaid(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "license marked paid")
}
