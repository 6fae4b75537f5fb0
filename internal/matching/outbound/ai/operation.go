package ai

import (
	"context"
	"strings"

	"github.com/shandysiswandi/artmatch/internal/matching/entity"
)

type metadataResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Style    string `json:"style"`
	Author   string `json:"author"`
	Filename string `json:"filename"`
}

type matchResponse struct {
	Status             string           `json:"status"`
	MatchID            string           `json:"match_id"`
	Category           string           `json:"category"`
	SimilarityDistance float64          `json:"similarity_distance"`
	Metadata           metadataResponse `json:"metadata"`
}

// FindMatch returns the indexed artwork closest to the image, or ErrNoMatch.
func (c *Client) FindMatch(ctx context.Context, image []byte, filename string) (*entity.Match, error) {
	data, err := c.post(ctx, "FindMatch", "/find-match", nil, filePart{name: filename, data: image})
	if err != nil {
		return nil, err
	}

	var m matchResponse
	if err := decode("find-match", data, &m); err != nil {
		return nil, err
	}
	if m.Status == statusNoMatch || m.MatchID == "" {
		return nil, ErrNoMatch
	}

	return &entity.Match{
		MatchID:            m.MatchID,
		Category:           m.Category,
		SimilarityDistance: m.SimilarityDistance,
		Artwork: entity.Artwork{
			Name:     m.Metadata.Name,
			Category: m.Metadata.Category,
			Style:    m.Metadata.Style,
			Author:   m.Metadata.Author,
			Filename: m.Metadata.Filename,
		},
	}, nil
}

// SwapFace puts the face of image into the artwork at targetPath and returns
// the generated JPEG.
func (c *Client) SwapFace(ctx context.Context, image []byte, targetPath string) ([]byte, error) {
	return c.post(ctx, "SwapFace", "/swap-face",
		[][2]string{{fieldTargetPath, targetPath}},
		filePart{name: defaultSelfieName, data: image},
	)
}

// CheckFace reports whether the service detects a face in image.
func (c *Client) CheckFace(ctx context.Context, image []byte, filename string) (bool, error) {
	if strings.TrimSpace(filename) == "" {
		filename = defaultCheckedName
	}

	data, err := c.post(ctx, "CheckFace", "/check-face", nil, filePart{name: filename, data: image})
	if err != nil {
		return false, err
	}

	var found bool
	if err := decode("check-face", data, &found); err != nil {
		return false, err
	}

	return found, nil
}

type indexResponse struct {
	Status         string `json:"status"`
	ID             string `json:"id"`
	CollectionSize int64  `json:"collection_size"`
}

// IndexArtwork adds an artwork image to the searchable collection.
func (c *Client) IndexArtwork(ctx context.Context, art entity.Artwork, image []byte) (*entity.IndexResult, error) {
	data, err := c.post(ctx, "IndexArtwork", "/index-image",
		[][2]string{
			{"name", art.Name},
			{"category", art.Category},
			{"style", art.Style},
			{"author", art.Author},
		},
		filePart{name: art.Filename, data: image},
	)
	if err != nil {
		return nil, err
	}

	var out indexResponse
	if err := decode("index-image", data, &out); err != nil {
		return nil, err
	}

	return &entity.IndexResult{ID: out.ID, CollectionSize: out.CollectionSize}, nil
}
