package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/events"
	"goparts-service/internal/models"
	"goparts-service/internal/repository"
)

// CategoryService implements the category operations: CRUD, reorder, merge
// and bulk part reassignment
type CategoryService struct {
	repo            *repository.CategoryRepository
	eventsPublisher *events.Publisher
	logger          *logrus.Entry
}

// NewCategoryService creates a new category service
func NewCategoryService(repo *repository.CategoryRepository, eventsPublisher *events.Publisher, logger *logrus.Logger) *CategoryService {
	return &CategoryService{
		repo:            repo,
		eventsPublisher: eventsPublisher,
		logger:          logger.WithField("component", "category-service"),
	}
}

// CreateCategory creates a category, assigning the next display order when
// the request does not specify one
func (s *CategoryService) CreateCategory(req models.CreateCategoryRequest, createdBy string) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("category name must not be empty")
	}

	displayOrder := 0
	if req.DisplayOrder != nil {
		if *req.DisplayOrder <= 0 {
			return nil, fmt.Errorf("display order must be a positive integer")
		}
		displayOrder = *req.DisplayOrder
	} else {
		next, err := s.repo.NextDisplayOrder()
		if err != nil {
			return nil, fmt.Errorf("failed to determine next display order: %w", err)
		}
		displayOrder = next
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &models.Category{
		ID:           uuid.New(),
		Name:         name,
		Description:  req.Description,
		DisplayOrder: displayOrder,
		IsActive:     isActive,
		CreatedBy:    createdBy,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"categoryId":   category.ID,
		"name":         category.Name,
		"displayOrder": category.DisplayOrder,
	}).Info("Category created")

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(id uuid.UUID) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// ListCategories retrieves categories ordered by display order
func (s *CategoryService) ListCategories(includeInactive bool, limit, offset int) ([]models.Category, int64, error) {
	return s.repo.GetAll(includeInactive, limit, offset)
}

// ListCategoryRollups retrieves categories with derived inventory rollups
func (s *CategoryService) ListCategoryRollups(includeInactive bool) ([]models.CategoryRollup, error) {
	return s.repo.GetAllWithRollup(includeInactive)
}

// UpdateCategory applies a partial update to a category
func (s *CategoryService) UpdateCategory(id uuid.UUID, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("category name must not be empty")
		}
		category.Name = name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.DisplayOrder != nil {
		if *req.DisplayOrder <= 0 {
			return nil, fmt.Errorf("display order must be a positive integer")
		}
		category.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ReorderCategories reassigns display orders from the full ordered id list.
// Atomic: on failure no order changes and the caller should re-fetch the list
// rather than trust any optimistic local ordering.
func (s *CategoryService) ReorderCategories(req models.ReorderCategoriesRequest) error {
	seen := make(map[uuid.UUID]bool, len(req.CategoryIDs))
	for _, id := range req.CategoryIDs {
		if seen[id] {
			return fmt.Errorf("duplicate category id in reorder list: %s", id)
		}
		seen[id] = true
	}
	return s.repo.Reorder(req.CategoryIDs)
}

// DeleteCategory hard-deletes a category. Rejected with guidance while any
// part still references it.
func (s *CategoryService) DeleteCategory(id uuid.UUID) error {
	count, err := s.repo.PartCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return repository.ErrCategoryHasParts
	}
	return s.repo.Delete(id)
}

// MergeCategories moves every part from source to target and deactivates the
// source. Irreversible; callers must confirm with the user before invoking.
func (s *CategoryService) MergeCategories(sourceID, targetID uuid.UUID) (*models.MergeCategoriesResponse, error) {
	if sourceID == targetID {
		return nil, fmt.Errorf("cannot merge a category into itself")
	}

	moved, err := s.repo.Merge(sourceID, targetID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"sourceId":   sourceID,
		"targetId":   targetID,
		"partsMoved": moved,
	}).Info("Categories merged")

	if s.eventsPublisher != nil {
		s.eventsPublisher.PublishCategoryMerged(sourceID.String(), targetID.String(), moved)
	}

	return &models.MergeCategoriesResponse{
		Success:    true,
		PartsMoved: moved,
		SourceID:   sourceID,
		TargetID:   targetID,
	}, nil
}

// ReassignParts moves an explicit set of parts to the target category and
// reports the number updated
func (s *CategoryService) ReassignParts(req models.ReassignPartsRequest) (int64, error) {
	return s.repo.ReassignParts(req.PartIDs, req.TargetCategoryID)
}
