package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/artmatch/internal/identity/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/shandysiswandi/artmatch/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUsecase_PasswordChange(t *testing.T) {
	user := &entity.UserCredentialInfo{ID: 7, Email: "ada@example.com", Password: "stored"}
	in := PasswordChangeInput{CurrentPassword: "password1", NewPassword: "password2"}

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetUserCredentialByID", mock.Anything, int64(7)).Return(user, nil)
		f.argon2id.On("Verify", "stored", "password1").Return(true)
		f.argon2id.On("Hash", "password2").Return([]byte("fresh"), nil)
		f.repo.On("ReplaceUserCredential", mock.Anything, int64(7), "fresh").Return(nil)

		err := f.uc.PasswordChange(authCtx(7, "ada@example.com"), in)

		require.NoError(t, err)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.PasswordChange(context.Background(), in)

		requireCode(t, err, goerror.CodeUnauthorized, "Authentication required")
	})

	t.Run("SamePassword", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.PasswordChange(authCtx(7, "ada@example.com"), PasswordChangeInput{
			CurrentPassword: "password1",
			NewPassword:     "password1",
		})

		requireCode(t, err, goerror.CodeInvalidInput, "Validation error")
	})

	t.Run("WrongCurrentPassword", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetUserCredentialByID", mock.Anything, int64(7)).Return(user, nil)
		f.argon2id.On("Verify", "stored", "password1").Return(false)

		err := f.uc.PasswordChange(authCtx(7, "ada@example.com"), in)

		requireCode(t, err, goerror.CodeUnauthorized, "Invalid password")
	})

	t.Run("HashFailureKeepsOldCredential", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetUserCredentialByID", mock.Anything, int64(7)).Return(user, nil)
		f.argon2id.On("Verify", "stored", "password1").Return(true)
		f.argon2id.On("Hash", "password2").Return(nil, hash.ErrRandomSourceUnavailable)

		err := f.uc.PasswordChange(authCtx(7, "ada@example.com"), in)

		requireCode(t, err, goerror.CodeInternal, "Password change failed")
		f.repo.AssertNotCalled(t, "ReplaceUserCredential", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RepoError", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetUserCredentialByID", mock.Anything, int64(7)).Return(nil, errors.New("db down"))

		err := f.uc.PasswordChange(authCtx(7, "ada@example.com"), in)

		requireCode(t, err, goerror.CodeInternal, "Internal server error")
		assert.Error(t, err)
	})
}
