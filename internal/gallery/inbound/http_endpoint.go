package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/artmatch/internal/gallery/usecase"
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc             uc
	maxUploadBytes int64
}

// UploadPhoto stores a selfie for the current user.
// @Summary Upload photo
// @Tags Gallery
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "JPEG, PNG or WebP image"
// @Success 201 {object} router.successResponse{data=UploadPhotoResponse} "Uploaded photo"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 413 {object} router.errorResponse "File too large"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/gallery/photos [post]
func (h *HTTPEndpoint) UploadPhoto(r *router.Request) (any, error) {
	data, _, err := r.ReadSingleFile("file", h.maxUploadBytes)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UploadPhoto(r.Context(), usecase.UploadPhotoInput{Data: data})
	if err != nil {
		return nil, err
	}

	return UploadPhotoResponse{PhotoResponse: newPhotoResponse(*resp)}, nil
}

// ListPhotos returns the current user's photos, newest first.
// @Summary List photos
// @Tags Gallery
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} router.successResponse{data=PhotosResponse} "Photo list"
// @Router /api/v1/gallery/photos [get]
func (h *HTTPEndpoint) ListPhotos(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page", 1)
	if err != nil {
		return nil, err
	}
	size, err := r.GetQueryInt32("size", 20)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListPhotos(r.Context(), usecase.ListPhotosInput{Page: page, Size: size})
	if err != nil {
		return nil, err
	}

	return PhotosResponse{
		Photos: lo.Map(resp.Photos, func(p usecase.PhotoOutput, _ int) PhotoResponse {
			return newPhotoResponse(p)
		}),
		Total: resp.Total,
		Page:  resp.Page,
		Size:  resp.Size,
	}, nil
}

// GetPhoto returns one photo of the current user.
// @Summary Get photo
// @Tags Gallery
// @Security BearerAuth
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} router.successResponse{data=PhotoResponse} "Photo"
// @Failure 404 {object} router.errorResponse "Photo not found"
// @Router /api/v1/gallery/photos/{id} [get]
func (h *HTTPEndpoint) GetPhoto(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.GetPhoto(r.Context(), usecase.GetPhotoInput{ID: id})
	if err != nil {
		return nil, err
	}

	return newPhotoResponse(*resp), nil
}

// DeletePhoto removes one photo of the current user.
// @Summary Delete photo
// @Tags Gallery
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 204 "No Content"
// @Failure 404 {object} router.errorResponse "Photo not found"
// @Router /api/v1/gallery/photos/{id} [delete]
func (h *HTTPEndpoint) DeletePhoto(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.DeletePhoto(r.Context(), usecase.DeletePhotoInput{ID: id})
}
