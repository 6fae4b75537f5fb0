package inbound

import "net/http"

type FindMatchRequest struct {
	PhotoID int64 `json:"photo_id,string"`
}

type ArtworkResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Style    string `json:"style"`
	Author   string `json:"author"`
	Filename string `json:"filename"`
}

type MatchResponse struct {
	MatchID            string          `json:"match_id"`
	Category           string          `json:"category"`
	SimilarityDistance float64         `json:"similarity_distance"`
	Artwork            ArtworkResponse `json:"artwork"`
}

type SwapFaceRequest struct {
	PhotoID int64  `json:"photo_id,string"`
	MatchID string `json:"match_id"`
	Style   string `json:"style"`
}

type SwapFaceResponse struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
}

func (SwapFaceResponse) StatusCode() int {
	return http.StatusCreated
}

func (SwapFaceResponse) Message() string {
	return "Face swapped"
}

type IndexArtworkResponse struct {
	ID             string `json:"id"`
	CollectionSize int64  `json:"collection_size"`
}

func (IndexArtworkResponse) StatusCode() int {
	return http.StatusCreated
}

func (IndexArtworkResponse) Message() string {
	return "Artwork indexed"
}
