package handlers

import (
	"net/http"

	"github.com/ona-ui/catalog/internal/api/middleware"
	"github.com/ona-ui/catalog/internal/services"
)

type FavoritesHandler struct {
	favorites services.FavoriteService
}

func NewFavoritesHandler(favorites services.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// ListMine returns the caller's starred components, most recent first.
func (h *FavoritesHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	items, err := h.favorites.List(r.Context(), sess.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, items)
}

func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	componentID, err := urlID(r, "componentId")
	if err != nil {
		respondError(w, err)
		return
	}
	sess := middleware.GetSession(r.Context())
	if err := h.favorites.Add(r.Context(), sess.UserID, componentID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "component favorited")
}

func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	componentID, err := urlID(r, "componentId")
	if err != nil {
		respondError(w, err)
		return
	}
	sess := middleware.GetSession(r.Context())
	if err := h.favorites.Remove(r.Context(), sess.UserID, componentID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, nil, "component unfavorited")
}
