package inbound

import (
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc, maxImageBytes int64) {
	end := &HTTPEndpoint{uc: uc, maxImageBytes: maxImageBytes}

	r.POST("/api/v1/matching/find", end.FindMatch)
	r.POST("/api/v1/matching/swap", end.SwapFace)
	r.POST("/api/v1/matching/artworks", end.IndexArtwork)
}
