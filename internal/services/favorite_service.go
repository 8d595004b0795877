package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/repository"
)

type FavoriteService interface {
	Add(ctx context.Context, userID, componentID uuid.UUID) error
	Remove(ctx context.Context, userID, componentID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]models.Component, error)
}

type favoriteService struct {
	favorites  repository.FavoriteRepository
	components repository.ComponentRepository
}

var _ FavoriteService = (*favoriteService)(nil)

func NewFavoriteService(favorites repository.FavoriteRepository, components repository.ComponentRepository) FavoriteService {
	return &favoriteService{favorites: favorites, components: components}
}

// Add stars a component for a user. The component lookup runs first so a
// missing component reads as NOT_FOUND rather than a constraint violation.
func (s *favoriteService) Add(ctx context.Context, userID, componentID uuid.UUID) error {
	var c models.Component
	if err := s.components.GetByID(ctx, componentID, &c); err != nil {
		return err
	}
	return s.favorites.Add(ctx, userID, componentID)
}

func (s *favoriteService) Remove(ctx context.Context, userID, componentID uuid.UUID) error {
	return s.favorites.Remove(ctx, userID, componentID)
}

func (s *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.Component, error) {
	return s.favorites.ListComponents(ctx, userID)
}
