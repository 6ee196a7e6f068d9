// Package web serves recipe searches over HTTP.
//
// GET /search reads its parameters from the query string, runs them through a
// [search.Builder] and renders the resulting [Page]. A request without the
// free-text parameter browses. GET /healthz answers 200.
package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	gdata "github.com/feedkit/gdata.go"
	"github.com/feedkit/gdata.go/pkg/connection"
	"github.com/feedkit/gdata.go/pkg/feed"
	"github.com/feedkit/gdata.go/pkg/query"
	"github.com/feedkit/gdata.go/pkg/search"
)

const cleanupFactor = 2

// Searcher is the part of *search.Builder the handler uses.
type Searcher interface {
	Build(p search.Params) (*query.Query, error)
	Execute(ctx context.Context, q *query.Query) (*feed.Feed, error)
}

type Option func(*Handler)

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithCache keeps rendered pages for ttl, keyed by the encoded query.
// A ttl of 0 disables caching.
func WithCache(ttl time.Duration) Option {
	return func(h *Handler) {
		if ttl <= 0 {
			h.cache = nil
			return
		}
		h.cache = gocache.New(ttl, cleanupFactor*ttl)
	}
}

type Handler struct {
	searcher Searcher
	renderer Renderer
	logger   zerolog.Logger
	cache    *gocache.Cache
	router   *mux.Router
}

// NewHandler returns the search handler. A nil renderer renders JSON.
func NewHandler(searcher Searcher, renderer Renderer, opts ...Option) *Handler {
	if renderer == nil {
		renderer = JSONRenderer{}
	}
	h := &Handler{
		searcher: searcher,
		renderer: renderer,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	r := mux.NewRouter()
	r.Use(h.logRequests)
	r.HandleFunc("/search", h.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	h.router = r

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	q, err := h.searcher.Build(search.Params(r.URL.Query()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	key := cacheKey(q)
	if h.cache != nil {
		if body, ok := h.cache.Get(key); ok {
			log.Debug().Str("key", key).Msg("cache hit")
			h.respond(w, http.StatusOK, body.([]byte))
			return
		}
	}

	f, err := h.searcher.Execute(r.Context(), q)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, NewPage(&search.Result{Query: q, Feed: f})); err != nil {
		h.respondError(w, r, err)
		return
	}
	if h.cache != nil {
		h.cache.SetDefault(key, buf.Bytes())
	}

	log.Info().Str("query", q.FreeText).Int("entries", f.Len()).Msg("search")
	h.respond(w, http.StatusOK, buf.Bytes())
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	_ = h.renderer.Render(&buf, map[string]string{"status": "ok"})
	h.respond(w, http.StatusOK, buf.Bytes())
}

func (h *Handler) respond(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

type errorBody struct {
	Error errorDetail `json:"error" yaml:"error"`
}

type errorDetail struct {
	Status  int    `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
	Param   string `json:"param,omitempty" yaml:"param,omitempty"`
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	detail := errorDetail{Status: status, Message: err.Error()}

	var vErr *search.ValidationError
	if errors.As(err, &vErr) {
		detail.Param = vErr.Param
	}

	ev := zerolog.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		ev = zerolog.Ctx(r.Context()).Error()
	}
	ev.Err(err).Int("status", status).Msg("search failed")

	var buf bytes.Buffer
	if rerr := h.renderer.Render(&buf, errorBody{Error: detail}); rerr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	h.respond(w, status, buf.Bytes())
}

// StatusFor maps a search failure to an HTTP status. Authentication failures
// of the backend keep their status; other backend failures are 502.
func StatusFor(err error) int {
	var vErr *search.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}

	var execErr *gdata.ExecutionError
	if errors.As(err, &execErr) {
		var httpErr *connection.HTTPError
		if errors.As(err, &httpErr) &&
			(httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden) {
			return httpErr.StatusCode
		}
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func cacheKey(q *query.Query) string {
	return strconv.FormatBool(q.OwnItemsOnly) + "?" + q.Values().Encode()
}
