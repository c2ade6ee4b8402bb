/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
)

//go:embed assets/*
var assets embed.FS

const playerOrigin = "https://www.youtube.com"

var roundTemplate = template.Must(template.New("round").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{.Favicon}}
<link rel="stylesheet" href="{{.Prefix}}/assets/vidquiz.css">
<title>Guess the video</title>
</head>
<body>
<main>
{{- if eq .Status "init"}}
<form class="start" method="post" action="{{.RoundURL}}/start">
<button class="play" type="submit">Play</button>
</form>
{{- else}}
<section class="player{{if eq .Status "playing"}} hidden{{end}}">
<iframe allowfullscreen allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" height="315" src="{{.EmbedURL}}" title="YouTube video player" width="100%"></iframe>
</section>
<form class="options" method="post" action="{{.RoundURL}}/answer">
{{- range .Options}}
<button class="option {{.Highlight}}" type="submit" name="answer" value="{{.Title}}"{{if $.Finished}} disabled{{end}}>{{.Title}}</button>
{{- end}}
</form>
{{- if .Finished}}
<p class="result">{{if .Correct}}Correct!{{else}}Wrong! It was "{{.Title}}".{{end}}</p>
<a class="play" href="{{.Origin}}">Play again</a>
<a class="share" href="{{.ShareURL}}"><img src="{{.ShareURL}}/qr" alt="Share this video" width="160" height="160"></a>
{{- end}}
{{- end}}
</main>
</body>
</html>
`))

type optionView struct {
	Title     string
	Highlight Highlight
}

type roundView struct {
	Prefix   string
	Favicon  template.HTML
	Status   string
	RoundURL string
	EmbedURL string
	ShareURL string
	Origin   string
	Title    string
	Options  []optionView
	Finished bool
	Correct  bool
}

func roundURL(cfg *Config, round *Round) string {
	return cfg.prefix + "/" + url.PathEscape(round.VideoID) + "/round/" + round.ID
}

func embedURL(videoID string) string {
	return playerOrigin + "/embed/" + url.PathEscape(videoID) + "?autoplay=1"
}

func newRoundView(cfg *Config, round *Round) roundView {
	view := roundView{
		Prefix:   cfg.prefix,
		Favicon:  template.HTML(getFavicon(cfg)),
		Status:   string(round.Status),
		RoundURL: roundURL(cfg, round),
		EmbedURL: embedURL(round.VideoID),
		ShareURL: cfg.prefix + "/" + url.PathEscape(round.VideoID),
		Origin:   round.Origin,
		Title:    round.Title,
		Options:  make([]optionView, len(round.Options)),
		Finished: round.Status == StatusFinished,
		Correct:  round.Correct(),
	}

	for i, option := range round.Options {
		view.Options[i] = optionView{
			Title:     option,
			Highlight: round.Highlight(option),
		}
	}

	return view
}

func renderRound(cfg *Config, round *Round) ([]byte, error) {
	var buf bytes.Buffer

	if err := roundTemplate.Execute(&buf, newRoundView(cfg, round)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveAssets(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		fname := "assets/" + strings.TrimPrefix(p.ByName("asset"), "/")

		data, err := assets.ReadFile(fname)
		if err != nil {
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		ext := strings.ToLower(filepath.Ext(fname))
		switch ext {
		case ".css":
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		case ".js":
			w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		case ".woff2":
			w.Header().Set("Content-Type", "font/woff2")
		}

		_, err = w.Write(data)
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: *
Disallow: /

User-agent: GPTBot
Disallow: /

User-agent: CCBot
Disallow: /`

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- err

			return
		}
	}
}
