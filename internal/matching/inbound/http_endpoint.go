package inbound

import (
	"github.com/shandysiswandi/artmatch/internal/matching/usecase"
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc            uc
	maxImageBytes int64
}

// FindMatch returns the artwork closest to one of the user's photos.
// @Summary Find matching artwork
// @Tags Matching
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body FindMatchRequest true "Photo to match"
// @Success 200 {object} router.successResponse{data=MatchResponse} "Matched artwork"
// @Failure 404 {object} router.errorResponse "No matching artwork found"
// @Failure 502 {object} router.errorResponse "Matching service unavailable"
// @Router /api/v1/matching/find [post]
func (h *HTTPEndpoint) FindMatch(r *router.Request) (any, error) {
	var req FindMatchRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.FindMatch(r.Context(), usecase.FindMatchInput{PhotoID: req.PhotoID})
	if err != nil {
		return nil, err
	}

	return MatchResponse{
		MatchID:            resp.MatchID,
		Category:           resp.Category,
		SimilarityDistance: resp.SimilarityDistance,
		Artwork: ArtworkResponse{
			Name:     resp.Artwork.Name,
			Category: resp.Artwork.Category,
			Style:    resp.Artwork.Style,
			Author:   resp.Artwork.Author,
			Filename: resp.Artwork.Filename,
		},
	}, nil
}

// SwapFace puts the user's face into a matched artwork.
// @Summary Swap face into artwork
// @Tags Matching
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body SwapFaceRequest true "Photo, artwork and style"
// @Success 201 {object} router.successResponse{data=SwapFaceResponse} "Generated image"
// @Failure 404 {object} router.errorResponse "Artwork not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 502 {object} router.errorResponse "Face swap service unavailable"
// @Router /api/v1/matching/swap [post]
func (h *HTTPEndpoint) SwapFace(r *router.Request) (any, error) {
	var req SwapFaceRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SwapFace(r.Context(), usecase.SwapFaceInput{
		PhotoID: req.PhotoID,
		MatchID: req.MatchID,
		Style:   req.Style,
	})
	if err != nil {
		return nil, err
	}

	return SwapFaceResponse{ObjectKey: resp.ObjectKey, URL: resp.URL}, nil
}

// IndexArtwork adds an artwork to the matching collection.
// @Summary Index artwork
// @Tags Matching
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Artwork image"
// @Param name formData string true "Match id, category_author_picture"
// @Param category formData string true "Category"
// @Param style formData string true "Style"
// @Param author formData string true "Author"
// @Success 201 {object} router.successResponse{data=IndexArtworkResponse} "Indexed artwork"
// @Failure 413 {object} router.errorResponse "File too large"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/matching/artworks [post]
func (h *HTTPEndpoint) IndexArtwork(r *router.Request) (any, error) {
	form, err := r.ReadForm("file", h.maxImageBytes)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.IndexArtwork(r.Context(), usecase.IndexArtworkInput{
		Name:     form.Values["name"],
		Category: form.Values["category"],
		Style:    form.Values["style"],
		Author:   form.Values["author"],
		Filename: form.Filename,
		Image:    form.File,
	})
	if err != nil {
		return nil, err
	}

	return IndexArtworkResponse{ID: resp.ID, CollectionSize: resp.CollectionSize}, nil
}
