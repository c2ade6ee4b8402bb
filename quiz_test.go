/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func newTestQuiz(t *testing.T, catalog *Catalog) *Quiz {
	t.Helper()

	return NewQuiz(catalog, newShuffler(7), newMemoryRoundStore(time.Minute))
}

func TestNewRoundOptions(t *testing.T) {
	catalog := testCatalog(t, 10)
	quiz := newTestQuiz(t, catalog)
	video, _ := catalog.Lookup("v3")

	orders := make(map[int]bool)

	for range 200 {
		round, err := quiz.NewRound(context.Background(), video, "/")
		if err != nil {
			t.Fatalf("new round: %v", err)
		}

		if round.Status != StatusInit {
			t.Fatalf("expected a new round to be init, got %s", round.Status)
		}
		if len(round.Options) != 4 {
			t.Fatalf("expected 4 options, got %v", round.Options)
		}

		correct := 0
		seen := make(map[string]bool)
		for _, option := range round.Options {
			if option == video.Title {
				correct++
			}
			if seen[option] {
				t.Fatalf("duplicate option %q in %v", option, round.Options)
			}
			seen[option] = true
		}
		if correct != 1 {
			t.Fatalf("expected the correct title exactly once, got %d in %v", correct, round.Options)
		}

		orders[slices.Index(round.Options, video.Title)] = true
	}

	if len(orders) < 2 {
		t.Fatalf("expected the correct title to move between positions")
	}
}

func TestNewRoundSmallCatalog(t *testing.T) {
	catalog := testCatalog(t, 2)
	quiz := newTestQuiz(t, catalog)
	video, _ := catalog.Lookup("v1")

	round, err := quiz.NewRound(context.Background(), video, "/v1")
	if err != nil {
		t.Fatalf("new round: %v", err)
	}

	if len(round.Options) != 2 || !slices.Contains(round.Options, "Title 1") || !slices.Contains(round.Options, "Title 2") {
		t.Fatalf("unexpected options %v", round.Options)
	}
}

func TestQuizAnswerCorrect(t *testing.T) {
	ctx := context.Background()
	catalog := lettersCatalog(t)
	quiz := newTestQuiz(t, catalog)
	video, _ := catalog.Lookup("C")

	round, err := quiz.NewRound(ctx, video, "/")
	if err != nil {
		t.Fatalf("new round: %v", err)
	}

	if _, err := quiz.Start(ctx, "C", round.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	store := mapStore{playedCookieName: "A"}

	round, recorded, err := quiz.Answer(ctx, "C", round.ID, "Charlie", store)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !recorded {
		t.Fatalf("expected the answer to be recorded")
	}
	if round.Status != StatusFinished || !round.Correct() {
		t.Fatalf("unexpected round %+v", round)
	}
	if round.Highlight("Charlie") != HighlightCorrect {
		t.Fatalf("expected the correct option to be highlighted")
	}
	if store[playedCookieName] != "A,C" {
		t.Fatalf("expected C to be appended, got %q", store[playedCookieName])
	}
}

func TestQuizAnswerIncorrect(t *testing.T) {
	ctx := context.Background()
	catalog := lettersCatalog(t)
	quiz := newTestQuiz(t, catalog)
	video, _ := catalog.Lookup("C")

	round, _ := quiz.NewRound(ctx, video, "/")
	quiz.Start(ctx, "C", round.ID)

	var wrong string
	for _, option := range round.Options {
		if option != "Charlie" {
			wrong = option
			break
		}
	}

	store := mapStore{}

	round, _, err := quiz.Answer(ctx, "C", round.ID, wrong, store)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}

	for _, option := range round.Options {
		want := HighlightNeutral
		switch option {
		case "Charlie":
			want = HighlightCorrect
		case wrong:
			want = HighlightIncorrect
		}
		if got := round.Highlight(option); got != want {
			t.Errorf("%s: expected %s, got %s", option, want, got)
		}
	}

	if store[playedCookieName] != "C" {
		t.Fatalf("expected C to be appended, got %q", store[playedCookieName])
	}
}

func TestQuizAnswerIsIdempotent(t *testing.T) {
	ctx := context.Background()
	catalog := lettersCatalog(t)
	quiz := newTestQuiz(t, catalog)
	video, _ := catalog.Lookup("B")

	round, _ := quiz.NewRound(ctx, video, "/")
	quiz.Start(ctx, "B", round.ID)

	store := mapStore{}

	if _, recorded, err := quiz.Answer(ctx, "B", round.ID, "Bravo", store); err != nil || !recorded {
		t.Fatalf("first answer: %v, %v", recorded, err)
	}

	// The cookie was cleared elsewhere; a second click must not re-add B.
	store[playedCookieName] = ""

	got, recorded, err := quiz.Answer(ctx, "B", round.ID, round.Options[0], store)
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if recorded {
		t.Fatalf("second answer must not be recorded")
	}
	if got.Answer != "Bravo" {
		t.Fatalf("recorded answer changed to %q", got.Answer)
	}
	if store[playedCookieName] != "" {
		t.Fatalf("played list must not be appended twice, got %q", store[playedCookieName])
	}
}

func TestQuizAnswerBeforeStartIsIgnored(t *testing.T) {
	ctx := context.Background()
	catalog := lettersCatalog(t)
	quiz := newTestQuiz(t, catalog)
	video, _ := catalog.Lookup("A")

	round, _ := quiz.NewRound(ctx, video, "/")
	store := mapStore{}

	got, recorded, err := quiz.Answer(ctx, "A", round.ID, "Alpha", store)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if recorded || got.Status != StatusInit {
		t.Fatalf("answer before start must be ignored, got %s", got.Status)
	}
	if _, ok := store[playedCookieName]; ok {
		t.Fatalf("played list must not be written")
	}
}

func TestQuizRoundBelongsToVideo(t *testing.T) {
	ctx := context.Background()
	catalog := lettersCatalog(t)
	quiz := newTestQuiz(t, catalog)
	video, _ := catalog.Lookup("A")

	round, _ := quiz.NewRound(ctx, video, "/")

	if _, err := quiz.Round(ctx, "B", round.ID); !errors.Is(err, ErrUnknownRound) {
		t.Fatalf("expected ErrUnknownRound for another video, got %v", err)
	}
	if _, err := quiz.Start(ctx, "B", round.ID); !errors.Is(err, ErrUnknownRound) {
		t.Fatalf("expected ErrUnknownRound for another video, got %v", err)
	}
	if _, _, err := quiz.Answer(ctx, "B", round.ID, "Alpha", mapStore{}); !errors.Is(err, ErrUnknownRound) {
		t.Fatalf("expected ErrUnknownRound for another video, got %v", err)
	}
	if _, err := quiz.Round(ctx, "A", "missing"); !errors.Is(err, ErrUnknownRound) {
		t.Fatalf("expected ErrUnknownRound for a missing round, got %v", err)
	}
}

func TestQuizAnswerUnknownOption(t *testing.T) {
	ctx := context.Background()
	catalog := lettersCatalog(t)
	quiz := newTestQuiz(t, catalog)
	video, _ := catalog.Lookup("A")

	round, _ := quiz.NewRound(ctx, video, "/")
	quiz.Start(ctx, "A", round.ID)

	store := mapStore{}

	if _, _, err := quiz.Answer(ctx, "A", round.ID, "Nope", store); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}

	got, _ := quiz.Round(ctx, "A", round.ID)
	if got.Status != StatusPlaying {
		t.Fatalf("round must still be playing, got %s", got.Status)
	}
	if _, ok := store[playedCookieName]; ok {
		t.Fatalf("played list must not be written")
	}
}
