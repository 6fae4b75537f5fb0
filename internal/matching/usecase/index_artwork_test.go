package usecase

import (
	"errors"
	"testing"

	"github.com/shandysiswandi/artmatch/internal/matching/entity"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUsecase_IndexArtwork(t *testing.T) {
	in := IndexArtworkInput{
		Name:     "baroque_rembrandt_night_watch",
		Category: "baroque",
		Style:    "oil",
		Author:   "Rembrandt",
		Image:    []byte("art"),
	}

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		f.ai.On("IndexArtwork", mock.Anything, entity.Artwork{
			Name:     in.Name,
			Category: "baroque",
			Style:    "oil",
			Author:   "Rembrandt",
			Filename: in.Name + ".jpg",
		}, []byte("art")).Return(&entity.IndexResult{ID: in.Name, CollectionSize: 3}, nil)

		out, err := f.uc.IndexArtwork(authCtx(1), in)

		require.NoError(t, err)
		assert.Equal(t, &IndexArtworkOutput{ID: in.Name, CollectionSize: 3}, out)
	})

	t.Run("MissingFile", func(t *testing.T) {
		f := newFixture(t)
		noFile := in
		noFile.Image = nil

		_, err := f.uc.IndexArtwork(authCtx(1), noFile)

		requireCode(t, err, goerror.CodeInvalidInput, "")
	})

	t.Run("TooLarge", func(t *testing.T) {
		f := newFixture(t)
		big := in
		big.Image = make([]byte, 17)

		_, err := f.uc.IndexArtwork(authCtx(1), big)

		requireCode(t, err, goerror.CodeTooLarge, "")
	})

	t.Run("InvalidName", func(t *testing.T) {
		f := newFixture(t)
		bad := in
		bad.Name = "night-watch"

		_, err := f.uc.IndexArtwork(authCtx(1), bad)

		requireCode(t, err, goerror.CodeInvalidInput, "")
	})

	t.Run("ServiceDown", func(t *testing.T) {
		f := newFixture(t)
		f.ai.On("IndexArtwork", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		_, err := f.uc.IndexArtwork(authCtx(1), in)

		requireCode(t, err, goerror.CodeBadGateway, "Matching service unavailable")
	})
}
