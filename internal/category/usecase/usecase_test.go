package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora-commerce-service/internal/category/dto"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
)

type fakeCategoryRepo struct {
	categories  map[string]*model.Category
	withProduct map[string]bool
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories:  map[string]*model.Category{},
		withProduct: map[string]bool{},
	}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *model.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, _ *dto.CategoryFilters) ([]model.Category, int, error) {
	var out []model.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *model.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) HasProducts(_ context.Context, id string) (bool, error) {
	return f.withProduct[id], nil
}

func TestCreateCategoryValidatesParent(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	parent, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{StoreID: "store-1", Name: "Apparel"})
	require.NoError(t, err)
	assert.True(t, parent.IsActive)

	child, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{
		StoreID:  "store-1",
		Name:     "Shirts",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, *child.ParentID)

	ghost := "nope"
	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{StoreID: "store-1", Name: "X", ParentID: &ghost})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// Cross-store nesting is rejected.
	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{StoreID: "store-2", Name: "Y", ParentID: &parent.ID})
	assert.Equal(t, "VALIDATION", apperror.CodeOf(err))

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{StoreID: "store-1"})
	assert.Equal(t, "VALIDATION", apperror.CodeOf(err))
}

func TestUpdateCategoryRejectsSelfParent(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{StoreID: "store-1", Name: "Apparel"})
	require.NoError(t, err)

	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{
		ID:       cat.ID,
		StoreID:  "store-1",
		Name:     "Apparel",
		ParentID: &cat.ID,
		IsActive: true,
	})
	assert.Equal(t, "VALIDATION", apperror.CodeOf(err))
}

func TestDeleteCategoryInUse(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{StoreID: "store-1", Name: "Apparel"})
	require.NoError(t, err)
	repo.withProduct[cat.ID] = true

	err = uc.DeleteCategory(ctx, cat.ID)
	assert.Equal(t, "VALIDATION", apperror.CodeOf(err))

	repo.withProduct[cat.ID] = false
	require.NoError(t, uc.DeleteCategory(ctx, cat.ID))
	assert.NotContains(t, repo.categories, cat.ID)
}

func TestBuildTreeNestsGrandchildren(t *testing.T) {
	rootID, midID := "root", "mid"
	flat := []model.Category{
		{BaseModel: model.BaseModel{ID: "leaf"}, Name: "Tees", ParentID: &midID},
		{BaseModel: model.BaseModel{ID: rootID}, Name: "Apparel"},
		{BaseModel: model.BaseModel{ID: midID}, Name: "Shirts", ParentID: &rootID},
		{BaseModel: model.BaseModel{ID: "other"}, Name: "Mugs"},
	}

	tree := buildTree(flat)

	require.Len(t, tree, 2)
	byName := map[string]model.Category{}
	for _, c := range tree {
		byName[c.Name] = c
	}

	apparel := byName["Apparel"]
	require.Len(t, apparel.Children, 1)
	assert.Equal(t, "Shirts", apparel.Children[0].Name)
	require.Len(t, apparel.Children[0].Children, 1)
	assert.Equal(t, "Tees", apparel.Children[0].Children[0].Name)

	assert.Empty(t, byName["Mugs"].Children)
}

func TestBuildTreeOrphanBecomesRoot(t *testing.T) {
	missing := "gone"
	flat := []model.Category{
		{BaseModel: model.BaseModel{ID: "a"}, Name: "Orphan", ParentID: &missing},
	}

	tree := buildTree(flat)
	require.Len(t, tree, 1)
	assert.Equal(t, "Orphan", tree[0].Name)
}
