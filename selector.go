/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

// Selector picks the next video to serve on the index page.
type Selector struct {
	catalog  *Catalog
	shuffler *Shuffler
}

// Selection is the outcome of one Select call.
type Selection struct {
	Video Video
	// Played is the played-list that was in effect when filtering, after
	// any reset.
	Played PlayedList
	Reset  bool
}

func NewSelector(catalog *Catalog, shuffler *Shuffler) *Selector {
	return &Selector{
		catalog:  catalog,
		shuffler: shuffler,
	}
}

// Select reads the played-list from store, resets it once only a single
// unplayed video would remain, and picks an unplayed video uniformly at
// random.
func (s *Selector) Select(store Store) (Selection, error) {
	sel := Selection{
		Played: readPlayed(store, s.catalog),
	}

	if len(sel.Played) == s.catalog.Len()-1 {
		sel.Played = PlayedList{}
		sel.Reset = true

		writePlayed(store, sel.Played)
	}

	candidates := s.catalog.Without(sel.Played...)
	if len(candidates) == 0 {
		return sel, ErrNoCandidateAvailable
	}

	shuffle(s.shuffler, candidates)

	sel.Video = candidates[0]

	return sel, nil
}
