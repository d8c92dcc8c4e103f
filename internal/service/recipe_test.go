package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/testdb"
	"github.com/platewise/backend/internal/types"
)

func createTestUser(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		PasswordHash: "not-a-real-hash",
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func createTestRecipe(t *testing.T, svc *RecipeService, owner uuid.UUID, title string, isPublic bool) *models.Recipe {
	t.Helper()
	recipe, err := svc.Create(context.Background(), &types.RecipeInput{
		Title:        title,
		Description:  "test description for " + title,
		Ingredients:  "- something",
		Instructions: "1. do something",
		IsPublic:     isPublic,
	}, owner)
	require.NoError(t, err)
	return recipe
}

func TestRecipeGetVisibility(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")

	private := createTestRecipe(t, svc, owner, "Secret Stew", false)
	public := createTestRecipe(t, svc, owner, "Open Omelette", true)

	// Owner sees their private recipe.
	got, err := svc.Get(ctx, private.ID, &owner)
	require.NoError(t, err)
	assert.Equal(t, "Secret Stew", got.Title)

	// Everyone else gets not-found, never forbidden.
	_, err = svc.Get(ctx, private.ID, &other)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, private.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	// Public recipes are readable without authentication.
	got, err = svc.Get(ctx, public.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Open Omelette", got.Title)

	_, err = svc.Get(ctx, 99999, &owner)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecipeListUnauthenticated(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	createTestRecipe(t, svc, owner, "Public One", true)
	createTestRecipe(t, svc, owner, "Public Two", true)
	createTestRecipe(t, svc, owner, "Hidden", false)

	items, err := svc.List(ctx, types.FilterAll, "", nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.True(t, item.IsPublic)
		assert.False(t, item.IsFavorite)
		assert.NotEqual(t, "Hidden", item.Title)
	}
}

func TestRecipeListFilters(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	createTestRecipe(t, svc, alice, "Alice Public", true)
	createTestRecipe(t, svc, alice, "Alice Private", false)
	bobPublic := createTestRecipe(t, svc, bob, "Bob Public", true)
	createTestRecipe(t, svc, bob, "Bob Private", false)

	// all: public plus own private, never someone else's private.
	items, err := svc.List(ctx, types.FilterAll, "", &alice)
	require.NoError(t, err)
	titles := listTitles(items)
	assert.ElementsMatch(t, []string{"Alice Public", "Alice Private", "Bob Public"}, titles)

	// mine: only own recipes, private included.
	items, err = svc.List(ctx, types.FilterMine, "", &alice)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Alice Public", "Alice Private"}, listTitles(items))

	// favorites: only favorited recipes, annotated as such.
	_, err = svc.ToggleFavorite(ctx, bobPublic.ID, alice)
	require.NoError(t, err)

	items, err = svc.List(ctx, types.FilterFavorites, "", &alice)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Bob Public", items[0].Title)
	assert.True(t, items[0].IsFavorite)

	// The annotation shows up on the other filters too.
	items, err = svc.List(ctx, types.FilterAll, "", &alice)
	require.NoError(t, err)
	for _, item := range items {
		assert.Equal(t, item.ID == bobPublic.ID, item.IsFavorite, item.Title)
	}
}

func TestRecipeListFavoritesSurvivePrivacyChange(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	recipe := createTestRecipe(t, svc, bob, "Once Public", true)
	_, err := svc.ToggleFavorite(ctx, recipe.ID, alice)
	require.NoError(t, err)

	// Bob takes the recipe private; Alice's favorite mark keeps it listed.
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).
		Update("is_public", false).Error)

	items, err := svc.List(ctx, types.FilterFavorites, "", &alice)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Once Public", items[0].Title)
}

func TestRecipeListOrdering(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	first := createTestRecipe(t, svc, owner, "First", true)
	second := createTestRecipe(t, svc, owner, "Second", true)

	// Force distinct timestamps so newest-first is observable.
	require.NoError(t, db.Exec("UPDATE recipes SET created_at = ? WHERE id = ?",
		"2024-01-01 10:00:00", first.ID).Error)
	require.NoError(t, db.Exec("UPDATE recipes SET created_at = ? WHERE id = ?",
		"2024-01-02 10:00:00", second.ID).Error)

	items, err := svc.List(ctx, types.FilterAll, "", nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Title)
	assert.Equal(t, "First", items[1].Title)
}

func TestRecipeListSearch(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	createTestRecipe(t, svc, owner, "Garlic Noodles", true)
	createTestRecipe(t, svc, owner, "Berry Smoothie", true)

	items, err := svc.List(ctx, types.FilterAll, "garlic", nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Garlic Noodles", items[0].Title)
}

func TestRecipeCreateValidation(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "owner")

	cases := []types.RecipeInput{
		{Title: "   ", Ingredients: "- x", Instructions: "1. y"},
		{Title: "T", Ingredients: "", Instructions: "1. y"},
		{Title: "T", Ingredients: "- x", Instructions: "  "},
	}
	for _, input := range cases {
		_, err := svc.Create(ctx, &input, owner)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecipeUpdateByNonOwner(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")
	recipe := createTestRecipe(t, svc, owner, "Keep Me", true)

	_, err := svc.Update(ctx, recipe.ID, &types.RecipeInput{
		Title:        "Hijacked",
		Ingredients:  "- nothing",
		Instructions: "1. nothing",
	}, intruder)
	assert.ErrorIs(t, err, ErrForbidden)

	var stored models.Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Keep Me", stored.Title)
	assert.Equal(t, owner, stored.CreatedByID)
}

func TestRecipeUpdateByOwner(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	recipe := createTestRecipe(t, svc, owner, "Before", true)

	updated, err := svc.Update(ctx, recipe.ID, &types.RecipeInput{
		Title:        "After",
		Description:  "new description",
		Ingredients:  "- new",
		Instructions: "1. new",
		IsPublic:     false,
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.False(t, updated.IsPublic)
	assert.Equal(t, recipe.ID, updated.ID)
	assert.Equal(t, owner, updated.CreatedByID)
}

func TestRecipeDeleteByNonOwner(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")
	recipe := createTestRecipe(t, svc, owner, "Still Here", true)

	err := svc.Delete(ctx, recipe.ID, intruder)
	assert.ErrorIs(t, err, ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.Delete(ctx, recipe.ID, owner))
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestToggleFavorite(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	user := createTestUser(t, db, "user")
	recipe := createTestRecipe(t, svc, owner, "Toggle Me", true)

	favorited, err := svc.ToggleFavorite(ctx, recipe.ID, user)
	require.NoError(t, err)
	assert.True(t, favorited)

	// Toggling twice restores the original state.
	favorited, err = svc.ToggleFavorite(ctx, recipe.ID, user)
	require.NoError(t, err)
	assert.False(t, favorited)

	var count int64
	require.NoError(t, db.Model(&models.FavoriteRecipe{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.ToggleFavorite(ctx, 99999, user)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCanEdit(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	recipe := createTestRecipe(t, svc, owner, "Editable", true)

	ok, err := svc.CanEdit(ctx, recipe.ID, &owner)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanEdit(ctx, recipe.ID, &other)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CanEdit(ctx, recipe.ID, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func listTitles(items []types.RecipeListItem) []string {
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	return titles
}
