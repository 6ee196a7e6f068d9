// Package fakefeed provides a fake feed backend for tests.
//
// It answers feed GETs with pre-configured stub feeds encoded in the requested
// codec, records every request it sees, and can inject failures (error
// statuses, delays, undecodable bodies) per stub or globally.
package fakefeed

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/feedkit/gdata.go/internal/codec"
	"github.com/feedkit/gdata.go/pkg/feed"
)

// FailureType represents the type of failure to inject during request processing
type FailureType string

const (
	// FailureNone indicates no failure injection
	FailureNone FailureType = "none"
	// FailureStatus answers with Status and an error envelope
	FailureStatus FailureType = "status"
	// FailureResponseDelay sleeps for Delay before answering
	FailureResponseDelay FailureType = "response_delay"
	// FailureInvalidResponse sends bytes no codec can decode
	FailureInvalidResponse FailureType = "invalid_response"
	// FailurePlainText answers with Status and a text/plain body
	FailurePlainText FailureType = "plain_text"
)

// FailureConfig defines how a request fails.
type FailureConfig struct {
	Type    FailureType
	Status  int
	Code    string
	Message string
	Delay   time.Duration
}

// RequestMatcher selects the requests a stub answers.
type RequestMatcher struct {
	// Feed is the request path relative to the server root, e.g. "base/feeds/snippets".
	// Empty matches any feed.
	Feed string
	// Matcher optionally inspects the query parameters.
	Matcher func(values url.Values) bool
}

func (m RequestMatcher) matches(feedPath string, values url.Values) bool {
	if m.Feed != "" && m.Feed != feedPath {
		return false
	}
	return m.Matcher == nil || m.Matcher(values)
}

// StubResponse is a canned answer for matching requests.
type StubResponse struct {
	Matcher  RequestMatcher
	Feed     *feed.Feed
	Failures []FailureConfig
}

// SimpleStubResponse answers every request for feedPath with f.
func SimpleStubResponse(feedPath string, f *feed.Feed) StubResponse {
	return StubResponse{
		Matcher: RequestMatcher{Feed: feedPath},
		Feed:    f,
	}
}

// Request is what the server recorded about one incoming request.
type Request struct {
	Feed   string
	Values url.Values
	Header http.Header
}

type Server struct {
	mu             sync.RWMutex
	stubResponses  []StubResponse
	globalFailures []FailureConfig
	requests       []Request
	requiredToken  string

	ts *httptest.Server
}

// NewServer starts a fake feed server on a random local port.
func NewServer() *Server {
	s := &Server{}
	s.ts = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// URL is the base URL; use it (plus a path prefix) as the client endpoint.
func (s *Server) URL() string {
	return s.ts.URL
}

func (s *Server) Close() {
	s.ts.Close()
}

// AddStubResponse adds a stub response configuration to the server.
// Stub responses are matched in the order they were added.
func (s *Server) AddStubResponse(stub StubResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubResponses = append(s.stubResponses, stub)
}

// SetGlobalFailures sets failure configurations that apply to all requests.
// These are checked before stub-specific failures.
func (s *Server) SetGlobalFailures(failures []FailureConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalFailures = failures
}

// SetRequiredToken makes the server answer 401 to requests that do not carry
// token in a GoogleLogin Authorization header. An empty token turns the check off.
func (s *Server) SetRequiredToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requiredToken = token
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	c := codecFor(r.Header.Get("Accept"))
	feedPath := strings.TrimPrefix(r.URL.Path, "/")
	values := r.URL.Query()

	s.mu.Lock()
	s.requests = append(s.requests, Request{Feed: feedPath, Values: values, Header: r.Header.Clone()})
	globalFailures := s.globalFailures
	stubs := s.stubResponses
	token := s.requiredToken
	s.mu.Unlock()

	if token != "" && r.Header.Get("Authorization") != "GoogleLogin auth="+token {
		writeError(w, c, FailureConfig{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "token required"})
		return
	}

	for _, failure := range globalFailures {
		if applyFailure(w, c, failure) {
			return
		}
	}

	for _, stub := range stubs {
		if !stub.Matcher.matches(feedPath, values) {
			continue
		}
		for _, failure := range stub.Failures {
			if applyFailure(w, c, failure) {
				return
			}
		}
		f := stub.Feed
		if f == nil {
			f = &feed.Feed{}
		}
		data, err := feed.Encode(c, f)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", c.ContentType())
		_, _ = w.Write(data)
		return
	}

	writeError(w, c, FailureConfig{Status: http.StatusNotFound, Code: "notFound", Message: "no such feed: " + feedPath})
}

// applyFailure reports whether the response has been written.
func applyFailure(w http.ResponseWriter, c codec.Codec, f FailureConfig) bool {
	switch f.Type {
	case FailureResponseDelay:
		time.Sleep(f.Delay)
		return false
	case FailureStatus:
		writeError(w, c, f)
		return true
	case FailurePlainText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(f.Status)
		_, _ = w.Write([]byte(f.Message + "\n"))
		return true
	case FailureInvalidResponse:
		w.Header().Set("Content-Type", c.ContentType())
		_, _ = w.Write([]byte{0xff, 0x00, '<', 0x1f})
		return true
	default:
		return false
	}
}

func writeError(w http.ResponseWriter, c codec.Codec, f FailureConfig) {
	body, err := c.Marshal(map[string]any{
		"error": map[string]any{"code": f.Code, "message": f.Message},
	})
	if err != nil {
		http.Error(w, f.Message, f.Status)
		return
	}
	w.Header().Set("Content-Type", c.ContentType())
	w.WriteHeader(f.Status)
	_, _ = w.Write(body)
}

func codecFor(accept string) codec.Codec {
	if strings.Contains(accept, codec.ContentTypeJSON) {
		return codec.NewJSON()
	}
	return codec.NewCBOR()
}
