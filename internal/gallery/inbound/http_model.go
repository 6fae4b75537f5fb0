package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/artmatch/internal/gallery/usecase"
)

type PhotoResponse struct {
	ID          int64     `json:"id,string"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	FaceStatus  string    `json:"face_status"`
	UploadedAt  time.Time `json:"uploaded_at"`
	URL         string    `json:"url,omitempty"`
}

func newPhotoResponse(p usecase.PhotoOutput) PhotoResponse {
	return PhotoResponse{
		ID:          p.ID,
		ContentType: p.ContentType,
		Size:        p.Size,
		FaceStatus:  p.FaceStatus.String(),
		UploadedAt:  p.UploadedAt,
		URL:         p.URL,
	}
}

type UploadPhotoResponse struct {
	PhotoResponse
}

func (UploadPhotoResponse) StatusCode() int {
	return http.StatusCreated
}

func (UploadPhotoResponse) Message() string {
	return "Photo uploaded"
}

type PhotosResponse struct {
	Photos []PhotoResponse `json:"photos"`
	Total  int64           `json:"-"`
	Page   int32           `json:"-"`
	Size   int32           `json:"-"`
}

func (r PhotosResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.Total,
		"page":  r.Page,
		"size":  r.Size,
	}
}
