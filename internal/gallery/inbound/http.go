package inbound

import (
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc, maxUploadBytes int64) {
	end := &HTTPEndpoint{uc: uc, maxUploadBytes: maxUploadBytes}

	r.POST("/api/v1/gallery/photos", end.UploadPhoto)
	r.GET("/api/v1/gallery/photos", end.ListPhotos)
	r.GET("/api/v1/gallery/photos/:id", end.GetPhoto)
	r.DELETE("/api/v1/gallery/photos/:id", end.DeletePhoto)
}
