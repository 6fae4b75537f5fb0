// Package artwork maps a match id returned by the AI service to the artwork
// image on the shared dataset volume.
package artwork

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const extension = ".jpg"

// ErrArtworkNotFound is returned for malformed match ids, paths leaving the
// dataset root and files that do not exist.
var ErrArtworkNotFound = errors.New("artwork: not found")

// Resolver locates artwork files laid out as root/category/style/author_picture.jpg.
type Resolver struct {
	root string
}

func NewResolver(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	return &Resolver{root: filepath.Clean(abs)}, nil
}

// Resolve splits matchID as category_author_picture, where picture may itself
// contain underscores, and returns the absolute path of the artwork in style.
func (r *Resolver) Resolve(matchID, style string) (string, error) {
	parts := strings.Split(matchID, "_")
	if len(parts) < 3 {
		return "", ErrArtworkNotFound
	}

	category, author := parts[0], parts[1]
	picture := strings.Join(parts[2:], "_")
	if category == "" || author == "" || picture == "" || strings.TrimSpace(style) == "" {
		return "", ErrArtworkNotFound
	}

	full := filepath.Clean(filepath.Join(r.root, category, style, author+"_"+picture+extension))

	rel, err := filepath.Rel(r.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrArtworkNotFound
	}

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrArtworkNotFound
	}

	return full, nil
}
