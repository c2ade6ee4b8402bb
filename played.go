/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

const playedCookieName = "video"

// Store is the client-side key/value state a request carries. In production
// it is backed by cookies; tests use a plain map.
type Store interface {
	Get(key string) string
	Set(key, value string)
}

// cookieStore reads cookies from the request and writes them to the
// response. Values set during the request shadow the request's own cookies,
// so a reset followed by a read observes the reset.
type cookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	path    string
	pending map[string]string
}

func newCookieStore(w http.ResponseWriter, r *http.Request, path string) *cookieStore {
	return &cookieStore{
		w:       w,
		r:       r,
		path:    path,
		pending: make(map[string]string),
	}
}

func (s *cookieStore) Get(key string) string {
	if v, ok := s.pending[key]; ok {
		return v
	}

	c, err := s.r.Cookie(key)
	if err != nil {
		return ""
	}

	return c.Value
}

func (s *cookieStore) Set(key, value string) {
	s.pending[key] = value

	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     s.path,
		SameSite: http.SameSiteLaxMode,
	})
}

// PlayedList holds the ids of videos already answered in this session, in
// the order they were played.
type PlayedList []string

func (p PlayedList) Contains(id string) bool {
	return slices.Contains(p, id)
}

func (p PlayedList) String() string {
	return strings.Join(p, ",")
}

// parsePlayed turns a raw cookie value into a played-list. Garbage is not an
// error: empty segments, unknown ids and repeats are dropped.
func parsePlayed(raw string, catalog *Catalog) PlayedList {
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}

	played := PlayedList{}

	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := catalog.Lookup(id); !ok {
			continue
		}
		if played.Contains(id) {
			continue
		}
		played = append(played, id)
	}

	return played
}

func readPlayed(store Store, catalog *Catalog) PlayedList {
	return parsePlayed(store.Get(playedCookieName), catalog)
}

func writePlayed(store Store, played PlayedList) {
	store.Set(playedCookieName, played.String())
}

// appendPlayed re-reads the played-list from store, adds id if it is not
// already there, and writes it back. It reports whether id was added.
func appendPlayed(store Store, catalog *Catalog, id string) (PlayedList, bool) {
	played := readPlayed(store, catalog)
	if played.Contains(id) {
		return played, false
	}

	played = append(played, id)
	writePlayed(store, played)

	return played, true
}
