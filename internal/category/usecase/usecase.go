package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vendora/vendora-commerce-service/internal/category"
	"github.com/vendora/vendora-commerce-service/internal/category/dto"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if input.StoreID == "" || input.Name == "" {
		return nil, apperror.Validation("store_id and name are required")
	}

	if input.ParentID != nil && *input.ParentID != "" {
		parent, err := uc.repo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NotFoundf("parent category %s not found", *input.ParentID)
		}
		if parent.StoreID != input.StoreID {
			return nil, apperror.Validation("parent category belongs to another store")
		}
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StoreID:   input.StoreID,
		ParentID:  input.ParentID,
		Name:      input.Name,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.Description != "" {
		cat.Description = &input.Description
	}
	if input.ImageURL != "" {
		cat.ImageURL = &input.ImageURL
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFoundf("category %s not found", id)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	if filters.AsTree {
		// Tree view disables pagination; the full flat set is needed to nest.
		flat := *filters
		flat.ParentID = nil
		flat.Page = 0
		flat.PageSize = 0
		categories, count, err := uc.repo.FindAll(ctx, &flat)
		if err != nil {
			return nil, 0, err
		}
		return buildTree(categories), count, nil
	}

	return uc.repo.FindAll(ctx, filters)
}

// buildTree nests a flat category list under its root nodes. A child whose
// parent is missing from the set is treated as a root rather than dropped.
func buildTree(flat []model.Category) []model.Category {
	known := make(map[string]bool, len(flat))
	childrenOf := make(map[string][]model.Category)
	for _, c := range flat {
		known[c.ID] = true
	}

	var roots []model.Category
	for _, c := range flat {
		if c.ParentID != nil && *c.ParentID != "" && known[*c.ParentID] {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
		} else {
			roots = append(roots, c)
		}
	}

	var attach func(nodes []model.Category) []model.Category
	attach = func(nodes []model.Category) []model.Category {
		for i := range nodes {
			nodes[i].Children = attach(childrenOf[nodes[i].ID])
		}
		return nodes
	}
	return attach(roots)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFoundf("category %s not found", input.ID)
	}

	if input.ParentID != nil && *input.ParentID != "" {
		if *input.ParentID == cat.ID {
			return nil, apperror.Validation("category cannot be its own parent")
		}
		parent, err := uc.repo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NotFoundf("parent category %s not found", *input.ParentID)
		}
		if parent.StoreID != cat.StoreID {
			return nil, apperror.Validation("parent category belongs to another store")
		}
	}

	cat.Name = input.Name
	cat.ParentID = input.ParentID
	cat.SortOrder = input.SortOrder
	cat.IsActive = input.IsActive
	if input.Description != "" {
		cat.Description = &input.Description
	} else {
		cat.Description = nil
	}
	if input.ImageURL != "" {
		cat.ImageURL = &input.ImageURL
	} else {
		cat.ImageURL = nil
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	inUse, err := uc.repo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperror.Validation("category still has products assigned")
	}
	return uc.repo.Delete(ctx, id)
}
