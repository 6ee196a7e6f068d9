package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/feedkit/gdata.go/internal/codec"
	"github.com/feedkit/gdata.go/internal/fakefeed"
	"github.com/feedkit/gdata.go/pkg/connection"
	"github.com/feedkit/gdata.go/pkg/constants"
	"github.com/feedkit/gdata.go/pkg/feed"
)

type HTTPTestSuite struct {
	suite.Suite
	server *fakefeed.Server
	spans  *tracetest.SpanRecorder
}

func TestHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(HTTPTestSuite))
}

func (s *HTTPTestSuite) SetupTest() {
	s.server = fakefeed.NewServer()
	s.spans = tracetest.NewSpanRecorder()
}

func (s *HTTPTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *HTTPTestSuite) newConnection(c codec.Codec) *Connection {
	u, err := url.Parse(s.server.URL() + "/feeds")
	s.Require().NoError(err)

	cfg := connection.NewConfig(u)
	cfg.Codec = c
	cfg.TracerProvider = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.spans))
	_, err = cfg.Profile.DeclareSchema(feed.CellFeed)
	s.Require().NoError(err)
	s.Require().NoError(cfg.Validate())

	return New(cfg)
}

func (s *HTTPTestSuite) TestQueryDecodesFeed() {
	s.server.AddStubResponse(fakefeed.SimpleStubResponse("feeds/cells", &feed.Feed{
		Title:        "Sheet1",
		TotalResults: 1,
		Entries: []feed.Entry{
			{ID: "R1C1", Kind: feed.KindCell, Record: &feed.Cell{Row: 1, Col: 1, Value: "42"}},
		},
	}))

	for _, c := range []codec.Codec{codec.NewCBOR(), codec.NewJSON()} {
		conn := s.newConnection(c)

		f, err := conn.Query(context.Background(), &connection.Request{
			Feed:      "cells",
			Values:    url.Values{"max-results": {"10"}},
			UserAgent: "test-app GSpread-Go/devel GData-Go/devel",
		})
		s.Require().NoError(err, c.ContentType())
		s.Equal("Sheet1", f.Title)
		s.Require().Equal(1, f.Len())
		s.Equal(&feed.Cell{Row: 1, Col: 1, Value: "42"}, f.Entries[0].Record)
	}

	reqs := s.server.Requests()
	s.Require().Len(reqs, 2)
	s.Equal("10", reqs[0].Values.Get("max-results"))
	s.Equal(codec.ContentTypeCBOR, reqs[0].Header.Get("Accept"))
	s.Equal(codec.ContentTypeJSON, reqs[1].Header.Get("Accept"))
	s.Equal(constants.GDataVersion, reqs[0].Header.Get("GData-Version"))
	s.Equal("test-app GSpread-Go/devel GData-Go/devel", reqs[0].Header.Get("User-Agent"))
	s.NotEmpty(reqs[0].Header.Get(constants.RequestIDHeader))
	s.NotEqual(reqs[0].Header.Get(constants.RequestIDHeader), reqs[1].Header.Get(constants.RequestIDHeader))
	s.Empty(reqs[0].Header.Get("Authorization"))

	ended := s.spans.Ended()
	s.Require().Len(ended, 2)
	s.Equal("gdata.feed.query", ended[0].Name())
}

func (s *HTTPTestSuite) TestAuthToken() {
	s.server.SetRequiredToken("tok")
	s.server.AddStubResponse(fakefeed.SimpleStubResponse("", &feed.Feed{}))
	conn := s.newConnection(codec.NewJSON())

	_, err := conn.Query(context.Background(), &connection.Request{Feed: "cells"})
	var httpErr *connection.HTTPError
	s.Require().ErrorAs(err, &httpErr)
	s.Equal(http.StatusUnauthorized, httpErr.StatusCode)
	s.Equal("unauthorized", httpErr.Code)
	s.Equal("token required", httpErr.Message)

	conn.SetAuthToken("tok")
	_, err = conn.Query(context.Background(), &connection.Request{Feed: "cells"})
	s.Require().NoError(err)

	conn.SetAuthToken("")
	_, err = conn.Query(context.Background(), &connection.Request{Feed: "cells"})
	s.Require().Error(err)
}

func (s *HTTPTestSuite) TestErrorEnvelopes() {
	s.server.AddStubResponse(fakefeed.StubResponse{
		Matcher:  fakefeed.RequestMatcher{Feed: "feeds/bad"},
		Failures: []fakefeed.FailureConfig{{Type: fakefeed.FailureStatus, Status: http.StatusBadRequest, Code: "badQuery", Message: "invalid bq"}},
	})
	s.server.AddStubResponse(fakefeed.StubResponse{
		Matcher:  fakefeed.RequestMatcher{Feed: "feeds/down"},
		Failures: []fakefeed.FailureConfig{{Type: fakefeed.FailurePlainText, Status: http.StatusServiceUnavailable, Message: "maintenance"}},
	})

	conn := s.newConnection(codec.NewCBOR())

	_, err := conn.Query(context.Background(), &connection.Request{Feed: "bad"})
	var httpErr *connection.HTTPError
	s.Require().ErrorAs(err, &httpErr)
	s.Equal(&connection.HTTPError{StatusCode: http.StatusBadRequest, Code: "badQuery", Message: "invalid bq"}, httpErr)

	_, err = conn.Query(context.Background(), &connection.Request{Feed: "down"})
	s.Require().ErrorAs(err, &httpErr)
	s.Equal(&connection.HTTPError{StatusCode: http.StatusServiceUnavailable, Message: "maintenance"}, httpErr)

	ended := s.spans.Ended()
	s.Require().Len(ended, 2)
	s.Equal("Error", ended[0].Status().Code.String())
}

func (s *HTTPTestSuite) TestInvalidResponse() {
	s.server.AddStubResponse(fakefeed.StubResponse{
		Failures: []fakefeed.FailureConfig{{Type: fakefeed.FailureInvalidResponse}},
	})
	conn := s.newConnection(codec.NewJSON())

	_, err := conn.Query(context.Background(), &connection.Request{Feed: "cells"})
	s.ErrorIs(err, constants.InvalidResponse)
}

func (s *HTTPTestSuite) TestTimeoutAndCancellation() {
	s.server.AddStubResponse(fakefeed.StubResponse{
		Failures: []fakefeed.FailureConfig{{Type: fakefeed.FailureResponseDelay, Delay: 200 * time.Millisecond}},
	})
	conn := s.newConnection(codec.NewJSON()).SetTimeout(20 * time.Millisecond)

	_, err := conn.Query(context.Background(), &connection.Request{Feed: "cells"})
	s.Require().Error(err)

	var httpErr *connection.HTTPError
	s.False(errors.As(err, &httpErr))
}

func (s *HTTPTestSuite) TestVersionAndScope() {
	conn := s.newConnection(codec.NewJSON())
	s.Contains(conn.Version(), ProtocolVersion+"/")
	s.Equal("https://www.google.com/accounts/ClientLogin", conn.AuthScope().LoginURL())
	s.Equal([]string{"cell"}, kindsAsStrings(conn))
}

func (s *HTTPTestSuite) TestMissingEndpoint() {
	conn := New(connection.NewConfig(&url.URL{}))
	_, err := conn.Query(context.Background(), &connection.Request{Feed: "cells"})
	s.ErrorIs(err, constants.ErrNoEndpoint)
}

func kindsAsStrings(c *Connection) []string {
	var out []string
	for _, k := range c.ExtensionProfile().Kinds() {
		out = append(out, string(k))
	}
	return out
}
