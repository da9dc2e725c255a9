package services

import (
	"context"

	"github.com/SrwR16/RecipeHub/entity"
	"github.com/SrwR16/RecipeHub/repository"
)

// CatalogService serves the read-only lookups: categories and search history.
type CatalogService struct {
	Categories *repository.CategoryRepository
	History    *repository.SearchHistoryRepository
}

func NewCatalogService(categories *repository.CategoryRepository, history *repository.SearchHistoryRepository) *CatalogService {
	return &CatalogService{Categories: categories, History: history}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]repository.CategoryWithCount, error) {
	return s.Categories.ListWithCounts()
}

func (s *CatalogService) SearchHistory(ctx context.Context, v Viewer, page, pageSize int) ([]entity.SearchHistory, int64, error) {
	offset, limit := NormalizePage(page, pageSize)
	return s.History.ListForUser(v.UserID, offset, limit)
}
