/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNoCandidateAvailable is returned when every catalog video is
	// excluded by the played-list, or the catalog is too small to pick from.
	ErrNoCandidateAvailable = errors.New("no unplayed video available")
	// ErrUnknownVideo is returned for a video id absent from the catalog.
	ErrUnknownVideo = errors.New("unknown video")
	// ErrUnknownRound is returned for a round that expired, never existed,
	// or belongs to another video.
	ErrUnknownRound = errors.New("unknown round")
	// ErrUnknownOption is returned when an answer is not one of the round's options.
	ErrUnknownOption = errors.New("answer is not one of the options")
	// ErrRoundExists is returned when a round id is already taken.
	ErrRoundExists = errors.New("round already exists")

	ErrEmptyCatalog   = errors.New("catalog contains no videos")
	ErrInvalidID      = errors.New("invalid video id")
	ErrInvalidTitle   = errors.New("invalid video title")
	ErrReservedID     = errors.New("video id collides with a reserved path")
	ErrDuplicateID    = errors.New("duplicate video id")
	ErrDuplicateTitle = errors.New("duplicate video title")
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(cfg *Config, title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(getFavicon(cfg))
	htmlBody.WriteString(fmt.Sprintf(`<link rel="stylesheet" href="%s/assets/vidquiz.css">`, cfg.prefix))
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", html.EscapeString(title)))
	htmlBody.WriteString(fmt.Sprintf("<body class=\"notice\"><a href=\"%s/\">%s</a></body></html>", cfg.prefix, html.EscapeString(body)))

	return htmlBody.String()
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownVideo), errors.Is(err, ErrUnknownRound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnknownOption):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoCandidateAvailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func serveError(cfg *Config, w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)

	body := "An error has occurred. Please try again."
	switch status {
	case http.StatusNotFound:
		body = "That video is not part of the quiz. Click to play a random one."
	case http.StatusBadRequest:
		body = "That answer is not one of the options. Click to play again."
	case http.StatusServiceUnavailable:
		body = "No video is available right now. Click to start over."
	}

	logf(cfg, "ERROR: %s %s from %s: %v", r.Method, r.URL.Path, realIP(r), err)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	securityHeaders(cfg, w)
	w.WriteHeader(status)

	_, _ = io.WriteString(w, newPage(cfg, http.StatusText(status), body))
}
