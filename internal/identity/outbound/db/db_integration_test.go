//go:build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/artmatch/internal/identity/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"github.com/shandysiswandi/artmatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewDB(testutil.SetupPostgres(t), instrument.NewNoop())

	require.NoError(t, s.NewUser(ctx, entity.NewUser{ID: 1, Email: "ada@example.com"}, "stored-1"))
	assert.ErrorIs(t, s.NewUser(ctx, entity.NewUser{ID: 2, Email: "ada@example.com"}, "stored-2"), goerror.ErrConflict)

	exists, err := s.ExistsUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	cred, err := s.GetUserCredentialByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, &entity.UserCredentialInfo{ID: 1, Email: "ada@example.com", Password: "stored-1"}, cred)

	_, err = s.GetUserCredentialByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	total, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	require.NoError(t, s.CreateRefreshToken(ctx, entity.RefreshToken{ID: 10, UserID: 1, Token: "rt-10", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, s.ReplaceUserCredential(ctx, 1, "stored-3"))

	cred, err = s.GetUserCredentialByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "stored-3", cred.Password)

	rt, err := s.GetUserRefreshToken(ctx, "rt-10")
	require.NoError(t, err)
	assert.True(t, rt.Revoked)

	assert.ErrorIs(t, s.ReplaceUserCredential(ctx, 99, "x"), goerror.ErrNotFound)
}

func TestDB_RotateRefreshToken(t *testing.T) {
	ctx := context.Background()
	s := NewDB(testutil.SetupPostgres(t), instrument.NewNoop())
	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond)

	require.NoError(t, s.NewUser(ctx, entity.NewUser{ID: 1, Email: "ada@example.com"}, "stored"))
	require.NoError(t, s.CreateRefreshToken(ctx, entity.RefreshToken{ID: 10, UserID: 1, Token: "old", ExpiresAt: exp}))

	rotate := entity.RotateRefreshToken{NewID: 11, OldID: 10, UserID: 1, NewToken: "new", NewExpiresAt: exp}
	require.NoError(t, s.RotateRefreshToken(ctx, rotate))

	old, err := s.GetUserRefreshToken(ctx, "old")
	require.NoError(t, err)
	assert.True(t, old.Revoked)
	require.NotNil(t, old.ReplacedByTokenID)
	assert.EqualValues(t, 11, *old.ReplacedByTokenID)

	rotate.NewID, rotate.NewToken = 12, "newer"
	assert.ErrorIs(t, s.RotateRefreshToken(ctx, rotate), goerror.ErrNotFound)

	require.NoError(t, s.RevokeRefreshToken(ctx, 1, "new"))
	cur, err := s.GetUserRefreshToken(ctx, "new")
	require.NoError(t, err)
	assert.True(t, cur.Revoked)
	assert.Nil(t, cur.ReplacedByTokenID)
}
