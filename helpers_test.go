/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"testing"
)

// mapStore is an in-memory Store.
type mapStore map[string]string

func (m mapStore) Get(key string) string {
	return m[key]
}

func (m mapStore) Set(key, value string) {
	m[key] = value
}

func testVideos(n int) []Video {
	videos := make([]Video, n)
	for i := range videos {
		videos[i] = Video{
			ID:    fmt.Sprintf("v%d", i+1),
			Title: fmt.Sprintf("Title %d", i+1),
		}
	}

	return videos
}

func testCatalog(t *testing.T, n int) *Catalog {
	t.Helper()

	catalog, err := NewCatalog(testVideos(n))
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	return catalog
}

func lettersCatalog(t *testing.T) *Catalog {
	t.Helper()

	catalog, err := NewCatalog([]Video{
		{ID: "A", Title: "Alpha"},
		{ID: "B", Title: "Bravo"},
		{ID: "C", Title: "Charlie"},
		{ID: "D", Title: "Delta"},
		{ID: "E", Title: "Echo"},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	return catalog
}
