/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"crypto/rand"
	"slices"
	"time"
)

type Status string

const (
	StatusInit     Status = "init"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

type Highlight string

const (
	HighlightNeutral   Highlight = "neutral"
	HighlightCorrect   Highlight = "correct"
	HighlightIncorrect Highlight = "incorrect"
)

const roundIDLength = 16

// Round is one init -> playing -> finished cycle for a single video.
type Round struct {
	ID      string    `json:"id"`
	VideoID string    `json:"video_id"`
	Title   string    `json:"title"`
	Options []string  `json:"options"`
	Status  Status    `json:"status"`
	Answer  string    `json:"answer,omitempty"`
	Origin  string    `json:"origin"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Start moves the round from init to playing. It reports whether the status
// changed.
func (r *Round) Start() bool {
	if r.Status != StatusInit {
		return false
	}

	r.Status = StatusPlaying
	r.Updated = time.Now()

	return true
}

// Submit records answer and finishes the round. Answers outside the playing
// state are ignored, so repeated submissions never change the outcome.
func (r *Round) Submit(answer string) (bool, error) {
	if r.Status != StatusPlaying {
		return false, nil
	}

	if !slices.Contains(r.Options, answer) {
		return false, ErrUnknownOption
	}

	r.Answer = answer
	r.Status = StatusFinished
	r.Updated = time.Now()

	return true, nil
}

func (r *Round) Correct() bool {
	return r.Status == StatusFinished && r.Answer == r.Title
}

func (r *Round) Highlight(option string) Highlight {
	if r.Status != StatusFinished {
		return HighlightNeutral
	}

	switch option {
	case r.Title:
		return HighlightCorrect
	case r.Answer:
		return HighlightIncorrect
	default:
		return HighlightNeutral
	}
}

func (r *Round) clone() *Round {
	c := *r
	c.Options = slices.Clone(r.Options)

	return &c
}

// newRoundID returns a crypto-random alphanumeric id, using rejection
// sampling to avoid modulo bias.
func newRoundID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	const max = byte(255 - (256 % len(letters)))

	out := make([]byte, 0, roundIDLength)
	buf := make([]byte, roundIDLength*2)

	for len(out) < roundIDLength {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		for _, b := range buf {
			if b > max {
				continue
			}

			out = append(out, letters[int(b)%len(letters)])
			if len(out) == roundIDLength {
				break
			}
		}
	}

	return string(out)
}
