package entity

type Artwork struct {
	Name     string
	Category string
	Style    string
	Author   string
	Filename string
}

type Match struct {
	MatchID            string
	Category           string
	SimilarityDistance float64
	Artwork            Artwork
}

type IndexResult struct {
	ID             string
	CollectionSize int64
}
