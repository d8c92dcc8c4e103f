package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/testdb"
	"github.com/platewise/backend/internal/types"
)

func TestProfileGetAndUpdate(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewProfileService(db)
	ctx := context.Background()

	userID := createTestUser(t, db, "alice")

	user, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.Empty(t, user.AIContext)

	aiContext := "vegetarian, allergic to nuts"
	err = svc.Update(ctx, userID, &types.UpdateProfileRequest{
		Name:      "Alice Renamed",
		AIContext: &aiContext,
	})
	require.NoError(t, err)

	user, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", user.Name)
	assert.Equal(t, aiContext, user.AIContext)

	// Nil pointers leave columns untouched.
	err = svc.Update(ctx, userID, &types.UpdateProfileRequest{Name: "Alice Final"})
	require.NoError(t, err)
	user, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Final", user.Name)
	assert.Equal(t, aiContext, user.AIContext)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	err = svc.Update(ctx, uuid.New(), &types.UpdateProfileRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileAIContext(t *testing.T) {
	db := testdb.OpenSQLite(t)
	svc := NewProfileService(db)
	ctx := context.Background()

	userID := createTestUser(t, db, "alice")
	aiContext := "loves spicy food"
	require.NoError(t, svc.Update(ctx, userID, &types.UpdateProfileRequest{
		Name:      "alice",
		AIContext: &aiContext,
	}))

	assert.Equal(t, aiContext, svc.AIContext(ctx, userID))

	// Missing users never fail the generation pipeline.
	assert.Empty(t, svc.AIContext(ctx, uuid.New()))
}
