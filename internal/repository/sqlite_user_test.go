package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndLookup(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	u := &domain.User{ID: "u1", Email: "dana@example.com", Name: "Dana", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, u, []byte("hash")))

	byEmail, hash, err := repo.GetByEmail(ctx, "DANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)
	assert.Equal(t, []byte("hash"), hash)

	byID, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Dana", byID.Name)

	err = repo.Create(ctx, &domain.User{ID: "u2", Email: "dana@EXAMPLE.com", CreatedAt: time.Now()}, []byte("x"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_CurrentSession(t *testing.T) {
	repo := NewSQLiteUserRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	current, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "u1", Email: "a@example.com", CreatedAt: time.Now()}, []byte("h")))
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "u2", Email: "b@example.com", CreatedAt: time.Now()}, []byte("h")))

	require.NoError(t, repo.SetCurrent(ctx, "u1"))
	require.NoError(t, repo.SetCurrent(ctx, "u2"))
	current, err = repo.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "u2", current.ID)

	require.NoError(t, repo.ClearCurrent(ctx))
	current, err = repo.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}
