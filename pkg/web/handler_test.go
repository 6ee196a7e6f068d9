package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	gdata "github.com/feedkit/gdata.go"
	"github.com/feedkit/gdata.go/internal/fakefeed"
	"github.com/feedkit/gdata.go/pkg/connection"
	"github.com/feedkit/gdata.go/pkg/feed"
	"github.com/feedkit/gdata.go/pkg/logger"
	"github.com/feedkit/gdata.go/pkg/query"
	"github.com/feedkit/gdata.go/pkg/search"
)

type HandlerTestSuite struct {
	suite.Suite
	backend *fakefeed.Server
	builder *search.Builder
	logs    bytes.Buffer
	logData *logger.LogData
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.backend = fakefeed.NewServer()
	s.backend.AddStubResponse(fakefeed.SimpleStubResponse("base/feeds/snippets", &feed.Feed{
		Title:        "recipes",
		TotalResults: 1,
		StartIndex:   1,
		ItemsPerPage: 25,
		Entries: []feed.Entry{
			{ID: "7", Title: "Green curry", Kind: feed.KindSnippet, Record: &feed.Item{
				ItemType:   "recipes",
				Attributes: map[string][]string{"cuisine": {"thai"}},
			}},
		},
	}))

	cfg := gdata.NewConfig("feedkit-webtest-1", gdata.Base)
	cfg.Endpoint = s.backend.URL() + "/base/feeds"
	client, err := gdata.FromConfig(cfg)
	s.Require().NoError(err)

	s.builder, err = search.NewBuilder(client, query.AllItems)
	s.Require().NoError(err)

	s.logs.Reset()
	s.logData, err = logger.New().FromBuffer(&s.logs).Level("debug").Make()
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.backend.Close()
}

func (s *HandlerTestSuite) get(h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type pageBody struct {
	Query struct {
		OwnItemsOnly bool                `json:"ownItemsOnly"`
		FreeText     string              `json:"freeText"`
		Filters      map[string][]string `json:"filters"`
		Encoded      string              `json:"encoded"`
	} `json:"query"`
	Title   string `json:"title"`
	Total   int    `json:"total"`
	Entries []struct {
		ID     string         `json:"id"`
		Kind   string         `json:"kind"`
		Record map[string]any `json:"record"`
	} `json:"entries"`
}

type errBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Param   string `json:"param"`
	} `json:"error"`
}

func (s *HandlerTestSuite) TestSearch() {
	h := NewHandler(s.builder, nil, WithLogger(s.logData.Logger))

	rec := s.get(h, "/search?query=curry&cuisine=thai&cuisine=lao&unknown=1")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("application/json", rec.Header().Get("Content-Type"))
	s.NotEmpty(rec.Header().Get("X-Request-Id"))

	var body pageBody
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("curry", body.Query.FreeText)
	s.Equal(map[string][]string{"cuisine": {"thai", "lao"}}, body.Query.Filters)
	s.Equal("[item type:recipes] [cuisine:thai|lao]", body.Query.Encoded)
	s.Equal("recipes", body.Title)
	s.Require().Len(body.Entries, 1)
	s.Equal("snippet", body.Entries[0].Kind)
	s.Equal("recipes", body.Entries[0].Record["itemType"])

	reqs := s.backend.Requests()
	s.Require().Len(reqs, 1)
	s.Equal("curry", reqs[0].Values.Get("q"))

	s.Contains(s.logs.String(), `"request_id"`)
	s.Contains(s.logs.String(), `"path":"/search"`)
}

func (s *HandlerTestSuite) TestBrowse() {
	h := NewHandler(s.builder, nil)

	rec := s.get(h, "/search?cookingTime=abc")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var body pageBody
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Empty(body.Query.FreeText)
	s.Empty(body.Query.Filters)
	s.Equal("[item type:recipes]", s.backend.Requests()[0].Values.Get("bq"))
}

func (s *HandlerTestSuite) TestValidationError() {
	h := NewHandler(s.builder, nil)

	rec := s.get(h, "/search?query=soup&cookingTime=abc")
	s.Equal(http.StatusBadRequest, rec.Code)

	var body errBody
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(http.StatusBadRequest, body.Error.Status)
	s.Equal("cookingTime", body.Error.Param)
	s.Empty(s.backend.Requests(), "invalid queries never reach the backend")
}

func (s *HandlerTestSuite) TestBackendErrors() {
	s.backend.SetRequiredToken("secret")
	h := NewHandler(s.builder, nil)

	rec := s.get(h, "/search?query=soup")
	s.Equal(http.StatusUnauthorized, rec.Code)

	s.backend.SetRequiredToken("")
	s.backend.SetGlobalFailures([]fakefeed.FailureConfig{
		{Type: fakefeed.FailureStatus, Status: http.StatusInternalServerError, Code: "internal", Message: "boom"},
	})
	rec = s.get(h, "/search?query=soup")
	s.Equal(http.StatusBadGateway, rec.Code)

	var body errBody
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Contains(body.Error.Message, "boom")
}

func (s *HandlerTestSuite) TestCache() {
	cached := NewHandler(s.builder, nil, WithCache(time.Minute))
	first := s.get(cached, "/search?query=soup&cuisine=thai")
	second := s.get(cached, "/search?cuisine=thai&query=soup")
	s.Equal(http.StatusOK, first.Code)
	s.Equal(first.Body.String(), second.Body.String())
	s.Len(s.backend.Requests(), 1)

	uncached := NewHandler(s.builder, nil, WithCache(0))
	s.get(uncached, "/search?query=soup")
	s.get(uncached, "/search?query=soup")
	s.Len(s.backend.Requests(), 3)
}

func (s *HandlerTestSuite) TestYAML() {
	h := NewHandler(s.builder, YAMLRenderer{})

	rec := s.get(h, "/search?query=soup")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("application/yaml", rec.Header().Get("Content-Type"))
	s.Contains(rec.Body.String(), "freeText: soup")
	s.Contains(rec.Body.String(), "title: Green curry")
}

func (s *HandlerTestSuite) TestRequestIDAndHealth() {
	h := NewHandler(s.builder, nil)

	rec := s.get(h, "/healthz", "X-Request-Id", "req-1")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("req-1", rec.Header().Get("X-Request-Id"))
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())

	rec = s.get(h, "/nowhere")
	s.Equal(http.StatusNotFound, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&search.ValidationError{Param: "cookingTime", Err: errors.New("bad")}, http.StatusBadRequest},
		{&gdata.ExecutionError{Err: &connection.HTTPError{StatusCode: http.StatusForbidden}}, http.StatusForbidden},
		{&gdata.ExecutionError{Err: &connection.HTTPError{StatusCode: http.StatusUnauthorized}}, http.StatusUnauthorized},
		{&gdata.ExecutionError{Err: &connection.HTTPError{StatusCode: http.StatusBadRequest}}, http.StatusBadGateway},
		{&gdata.ExecutionError{Err: errors.New("dial tcp: refused")}, http.StatusBadGateway},
		{fmt.Errorf("render: %w", errors.New("broken pipe")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestRendererFor(t *testing.T) {
	r, err := RendererFor("yaml")
	require.NoError(t, err)
	assert.IsType(t, YAMLRenderer{}, r)

	r, err = RendererFor("")
	require.NoError(t, err)
	assert.IsType(t, JSONRenderer{}, r)

	_, err = RendererFor("xml")
	assert.Error(t, err)
}
