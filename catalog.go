/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/videos.yaml
var defaultCatalog []byte

// Top-level path segments served by the static router. A video id matching
// one of these would never be reachable.
var reservedIDs = map[string]bool{
	"assets":      true,
	"favicon.svg": true,
	"favicons":    true,
	"healthz":     true,
	"pprof":       true,
	"robots.txt":  true,
	"version":     true,
}

type Video struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
}

// Catalog is the fixed, ordered set of quiz videos. It is never modified
// after construction.
type Catalog struct {
	videos []Video
	index  map[string]int
}

// NewCatalog validates videos and builds the id index. Ids must be unique,
// path- and cookie-safe, and titles must be unique so that the correct
// answer is never ambiguous.
func NewCatalog(videos []Video) (*Catalog, error) {
	c := &Catalog{
		videos: make([]Video, 0, len(videos)),
		index:  make(map[string]int, len(videos)),
	}

	titles := make(map[string]string, len(videos))

	for _, v := range videos {
		v.ID = strings.TrimSpace(v.ID)
		v.Title = strings.TrimSpace(v.Title)

		if !validID(v.ID) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidID, v.ID)
		}
		if reservedIDs[strings.ToLower(v.ID)] {
			return nil, fmt.Errorf("%w: %q", ErrReservedID, v.ID)
		}
		if _, exists := c.index[v.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, v.ID)
		}
		if v.Title == "" {
			return nil, fmt.Errorf("%w: %q has no title", ErrInvalidTitle, v.ID)
		}
		if other, exists := titles[v.Title]; exists {
			return nil, fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateTitle, v.Title, other, v.ID)
		}

		titles[v.Title] = v.ID
		c.index[v.ID] = len(c.videos)
		c.videos = append(c.videos, v)
	}

	return c, nil
}

// LoadCatalog reads a YAML (or JSON) list of videos from path, falling back
// to the built-in catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog

	if path != "" {
		var err error

		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	videos, err := parseCatalog(data)
	if err != nil {
		return nil, err
	}

	if len(videos) == 0 {
		return nil, ErrEmptyCatalog
	}

	return NewCatalog(videos)
}

func parseCatalog(data []byte) ([]Video, error) {
	var videos []Video

	if err := yaml.Unmarshal(data, &videos); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	return videos, nil
}

func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}

	for _, r := range id {
		if unicode.IsSpace(r) || strings.ContainsRune(`/,;"\?#%`, r) {
			return false
		}
	}

	return true
}

func (c *Catalog) Len() int {
	return len(c.videos)
}

func (c *Catalog) Lookup(id string) (Video, bool) {
	i, ok := c.index[id]
	if !ok {
		return Video{}, false
	}

	return c.videos[i], true
}

// Videos returns a copy of the catalog in its original order.
func (c *Catalog) Videos() []Video {
	out := make([]Video, len(c.videos))
	copy(out, c.videos)

	return out
}

// Without returns the catalog videos whose ids are not in exclude, in
// catalog order.
func (c *Catalog) Without(exclude ...string) []Video {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	out := make([]Video, 0, len(c.videos))
	for _, v := range c.videos {
		if skip[v.ID] {
			continue
		}
		out = append(out, v)
	}

	return out
}
