/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	distractorCount = 3
	roundIDAttempts = 3
)

// Quiz builds rounds for resolved videos and scores the answers.
type Quiz struct {
	catalog  *Catalog
	shuffler *Shuffler
	rounds   RoundStore
}

func NewQuiz(catalog *Catalog, shuffler *Shuffler, rounds RoundStore) *Quiz {
	return &Quiz{
		catalog:  catalog,
		shuffler: shuffler,
		rounds:   rounds,
	}
}

// options returns the correct title plus up to three distractor titles, in
// random order.
func (q *Quiz) options(video Video) []string {
	others := q.catalog.Without(video.ID)
	shuffle(q.shuffler, others)

	picked := append(others[:min(distractorCount, len(others))], video)
	shuffle(q.shuffler, picked)

	titles := make([]string, len(picked))
	for i, v := range picked {
		titles[i] = v.Title
	}

	return titles
}

// NewRound creates and stores a fresh round for video. origin is the path
// that "Play again" should reload.
func (q *Quiz) NewRound(ctx context.Context, video Video, origin string) (*Round, error) {
	now := time.Now()

	round := &Round{
		VideoID: video.ID,
		Title:   video.Title,
		Options: q.options(video),
		Status:  StatusInit,
		Origin:  origin,
		Created: now,
		Updated: now,
	}

	for range roundIDAttempts {
		round.ID = newRoundID()

		err := q.rounds.Create(ctx, round)
		if errors.Is(err, ErrRoundExists) {
			continue
		}
		if err != nil {
			return nil, err
		}

		return round, nil
	}

	return nil, fmt.Errorf("create round for %s: %w", video.ID, ErrRoundExists)
}

// Round returns the stored round, provided it belongs to videoID.
func (q *Quiz) Round(ctx context.Context, videoID, roundID string) (*Round, error) {
	round, err := q.rounds.Get(ctx, roundID)
	if err != nil {
		return nil, err
	}

	if round.VideoID != videoID {
		return nil, ErrUnknownRound
	}

	return round, nil
}

func (q *Quiz) Start(ctx context.Context, videoID, roundID string) (*Round, error) {
	return q.rounds.Update(ctx, roundID, func(r *Round) error {
		if r.VideoID != videoID {
			return ErrUnknownRound
		}

		r.Start()

		return nil
	})
}

// Answer scores answer for the round. Only the first answer given while the
// round is playing counts; when it does, the video id is appended to the
// played-list currently held by store. The returned bool reports whether the
// answer was recorded.
func (q *Quiz) Answer(ctx context.Context, videoID, roundID, answer string, store Store) (*Round, bool, error) {
	var recorded bool

	round, err := q.rounds.Update(ctx, roundID, func(r *Round) error {
		recorded = false

		if r.VideoID != videoID {
			return ErrUnknownRound
		}

		ok, err := r.Submit(answer)
		if err != nil {
			return err
		}

		recorded = ok

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if recorded {
		appendPlayed(store, q.catalog, videoID)
	}

	return round, recorded, nil
}
