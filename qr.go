/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"net/http"
	"net/url"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const qrSize = 320

// qrCache holds PNG share codes for video pages. Codes for URLs under the
// configured base URL are generated once and kept; anything else is
// generated per request, with concurrent requests for the same URL
// collapsed into one encode.
type qrCache struct {
	cfg   *Config
	codes sync.Map
	group singleflight.Group
}

func newQRCache(cfg *Config) *qrCache {
	return &qrCache{
		cfg: cfg,
	}
}

func (c *qrCache) cacheable(link string) bool {
	return c.cfg.baseURL != "" && strings.HasPrefix(link, c.cfg.baseURL+"/")
}

func (c *qrCache) get(link string) ([]byte, error) {
	if png, ok := c.codes.Load(link); ok {
		return png.([]byte), nil
	}

	v, err, _ := c.group.Do(link, func() (any, error) {
		png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
		if err != nil {
			return nil, err
		}

		if c.cacheable(link) {
			c.codes.Store(link, png)
		}

		return png, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}

// pregenerate encodes the share code of every catalog video. It stops
// early, without error, when ctx is cancelled.
func (c *qrCache) pregenerate(ctx context.Context, catalog *Catalog) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, v := range catalog.Videos() {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			_, err := c.get(c.cfg.baseURL + "/" + url.PathEscape(v.ID))

			return err
		})
	}

	return g.Wait()
}

// shareURL is the absolute address of a video page, taken from --base-url
// when set and derived from the request otherwise.
func shareURL(cfg *Config, r *http.Request, videoID string) string {
	if cfg.baseURL != "" {
		return cfg.baseURL + "/" + url.PathEscape(videoID)
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	return scheme + "://" + r.Host + cfg.prefix + "/" + url.PathEscape(videoID)
}

func serveQR(cfg *Config, catalog *Catalog, codes *qrCache, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		video, ok := catalog.Lookup(p.ByName("video"))
		if !ok {
			serveError(cfg, w, r, ErrUnknownVideo)

			return
		}

		png, err := codes.get(shareURL(cfg, r, video.ID))
		if err != nil {
			serveError(cfg, w, r, err)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		w.Header().Set("Cache-Control", "public, max-age=3600")
		securityHeaders(cfg, w)

		_, err = w.Write(png)
		if err != nil {
			errs <- err

			return
		}
	}
}
