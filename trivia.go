/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/julienschmidt/httprouter"
)

const maxFormSize = 4096

func playedCookiePath(cfg *Config) string {
	return cfg.prefix + "/"
}

func writeRound(cfg *Config, w http.ResponseWriter, r *http.Request, round *Round, errs chan<- error, startTime time.Time) {
	page, err := renderRound(cfg, round)
	if err != nil {
		serveError(cfg, w, r, err)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	quizHeaders(cfg, w)
	w.WriteHeader(http.StatusOK)

	written, err := w.Write(page)
	if err != nil {
		errs <- err

		return
	}

	logf(cfg, "SERVE: Round %s (%s, %s) for %s (%s) to %s in %s",
		round.ID,
		round.Status,
		humanReadableSize(int64(written)),
		round.VideoID,
		r.URL.Path,
		realIP(r),
		time.Since(startTime).Round(time.Microsecond),
	)
}

func serveNewRound(cfg *Config, w http.ResponseWriter, r *http.Request, quiz *Quiz, video Video, origin string, errs chan<- error, startTime time.Time) {
	round, err := quiz.NewRound(r.Context(), video, origin)
	if err != nil {
		serveError(cfg, w, r, err)

		return
	}

	writeRound(cfg, w, r, round, errs, startTime)
}

// serveRandomVideo answers the index page with a round for an unplayed
// video. The URL is not changed: the page is rendered in place of a redirect.
func serveRandomVideo(cfg *Config, selector *Selector, quiz *Quiz, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		store := newCookieStore(w, r, playedCookiePath(cfg))

		sel, err := selector.Select(store)
		if err != nil {
			// Nothing left to pick; start over on the next visit.
			writePlayed(store, PlayedList{})

			serveError(cfg, w, r, err)

			return
		}

		if sel.Reset {
			logf(cfg, "QUIZ: Every video played by %s, starting over", realIP(r))
		}

		serveNewRound(cfg, w, r, quiz, sel.Video, cfg.prefix+"/", errs, startTime)
	}
}

func serveVideo(cfg *Config, catalog *Catalog, quiz *Quiz, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		id := p.ByName("video")

		video, ok := catalog.Lookup(id)
		if !ok {
			serveError(cfg, w, r, fmt.Errorf("%w: %q", ErrUnknownVideo, id))

			return
		}

		serveNewRound(cfg, w, r, quiz, video, cfg.prefix+"/"+url.PathEscape(video.ID), errs, startTime)
	}
}

func serveRound(cfg *Config, quiz *Quiz, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		round, err := quiz.Round(r.Context(), p.ByName("video"), p.ByName("round"))
		if err != nil {
			serveError(cfg, w, r, err)

			return
		}

		writeRound(cfg, w, r, round, errs, startTime)
	}
}

func startRound(cfg *Config, quiz *Quiz) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		round, err := quiz.Start(r.Context(), p.ByName("video"), p.ByName("round"))
		if err != nil {
			serveError(cfg, w, r, err)

			return
		}

		http.Redirect(w, r, roundURL(cfg, round), http.StatusSeeOther)
	}
}

func answerRound(cfg *Config, quiz *Quiz) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)

		if err := r.ParseForm(); err != nil {
			serveError(cfg, w, r, fmt.Errorf("%w: %v", ErrUnknownOption, err))

			return
		}

		answer := r.PostFormValue("answer")

		store := newCookieStore(w, r, playedCookiePath(cfg))

		round, recorded, err := quiz.Answer(r.Context(), p.ByName("video"), p.ByName("round"), answer, store)
		if err != nil {
			serveError(cfg, w, r, err)

			return
		}

		if recorded {
			result := "incorrectly"
			if round.Correct() {
				result = "correctly"
			}

			logf(cfg, "QUIZ: %s %s answered %q for %s in round %s", realIP(r), result, answer, round.VideoID, round.ID)
		}

		http.Redirect(w, r, roundURL(cfg, round), http.StatusSeeOther)
	}
}

// newVideoRouter serves everything below /:video. It is mounted as the
// NotFound handler of the main router, so static routes always win.
func newVideoRouter(cfg *Config, catalog *Catalog, quiz *Quiz, codes *qrCache, panicHandler func(http.ResponseWriter, *http.Request, any), errs chan<- error) *httprouter.Router {
	videos := httprouter.New()

	videos.PanicHandler = panicHandler

	videos.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveError(cfg, w, r, fmt.Errorf("%w: %s", ErrUnknownVideo, r.URL.Path))
	})

	videos.GET(cfg.prefix+"/:video", serveVideo(cfg, catalog, quiz, errs))

	videos.GET(cfg.prefix+"/:video/qr", serveQR(cfg, catalog, codes, errs))

	videos.GET(cfg.prefix+"/:video/round/:round", serveRound(cfg, quiz, errs))

	videos.POST(cfg.prefix+"/:video/round/:round/start", startRound(cfg, quiz))

	videos.POST(cfg.prefix+"/:video/round/:round/answer", answerRound(cfg, quiz))

	return videos
}
