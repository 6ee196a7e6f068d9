// Package http is the default feed connection: plain HTTP GETs against the
// feed endpoint, answered in the configured codec.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/buger/jsonparser"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/feedkit/gdata.go/internal/codec"
	"github.com/feedkit/gdata.go/internal/version"
	"github.com/feedkit/gdata.go/pkg/connection"
	"github.com/feedkit/gdata.go/pkg/constants"
	"github.com/feedkit/gdata.go/pkg/extension"
	"github.com/feedkit/gdata.go/pkg/feed"
)

const tracerName = "github.com/feedkit/gdata.go/pkg/connection/http"

// ProtocolVersion prefixes the version string of every HTTP connection.
const ProtocolVersion = "GData-Go"

type Connection struct {
	scope   connection.AuthScope
	codec   codec.Codec
	profile *extension.Profile
	logger  zerolog.Logger
	tracer  trace.Tracer

	httpClient *http.Client
	variables  sync.Map
}

var _ connection.Connection = (*Connection)(nil)

// New creates a connection from p. Call p.Validate first; New does not.
func New(p *connection.Config) *Connection {
	con := Connection{
		scope:   p.AuthScope(),
		codec:   p.Codec,
		profile: p.Profile,
		logger:  p.Logger,
	}

	if con.profile == nil {
		con.profile = extension.NewProfile()
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}
	con.httpClient = &http.Client{
		Timeout: timeout,
	}

	tp := p.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	con.tracer = tp.Tracer(tracerName)

	return &con
}

func (c *Connection) SetTimeout(timeout time.Duration) *Connection {
	c.httpClient.Timeout = timeout
	return c
}

func (c *Connection) SetHTTPClient(client *http.Client) *Connection {
	c.httpClient = client
	return c
}

func (c *Connection) ExtensionProfile() *extension.Profile {
	return c.profile
}

func (c *Connection) AuthScope() connection.AuthScope {
	return c.scope
}

func (c *Connection) Version() string {
	return ProtocolVersion + "/" + version.Get()
}

func (c *Connection) SetAuthToken(token string) {
	if token == "" {
		c.variables.Delete(constants.AuthTokenKey)
		return
	}
	c.variables.Store(constants.AuthTokenKey, token)
}

func (c *Connection) Query(ctx context.Context, r *connection.Request) (*feed.Feed, error) {
	if c.scope.Endpoint.Host == "" {
		return nil, constants.ErrNoEndpoint
	}

	u := r.URL(c.scope.Endpoint)
	requestID := newRequestID()

	ctx, span := c.tracer.Start(ctx, "gdata.feed.query", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("gdata.feed", r.Feed),
		attribute.String("gdata.request_id", requestID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, c.fail(span, err)
	}
	req.Header.Set("Accept", c.codec.ContentType())
	req.Header.Set("GData-Version", constants.GDataVersion)
	req.Header.Set(constants.RequestIDHeader, requestID)
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}
	if token, ok := c.variables.Load(constants.AuthTokenKey); ok {
		req.Header.Set("Authorization", fmt.Sprintf("GoogleLogin auth=%s", token.(string)))
	}

	start := time.Now()
	respData, err := c.MakeRequest(req)
	c.logger.Debug().
		Str("request_id", requestID).
		Str("feed", r.Feed).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("feed query")
	if err != nil {
		var httpErr *connection.HTTPError
		if errors.As(err, &httpErr) {
			span.SetAttributes(attribute.Int("http.status_code", httpErr.StatusCode))
		}
		return nil, c.fail(span, err)
	}

	f, err := feed.Decode(c.codec, respData, c.profile)
	if err != nil {
		return nil, c.fail(span, err)
	}
	span.SetAttributes(attribute.Int("gdata.entries", f.Len()))

	return f, nil
}

func (c *Connection) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// MakeRequest performs req and returns the body of a 2xx answer. Any other
// status becomes a *connection.HTTPError.
func (c *Connection) MakeRequest(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBytes, nil
	}

	return nil, c.decodeError(resp.StatusCode, resp.Header.Get("Content-Type"), respBytes)
}

func (c *Connection) decodeError(status int, contentType string, body []byte) *connection.HTTPError {
	httpErr := &connection.HTTPError{StatusCode: status}

	switch strings.TrimSpace(strings.Split(contentType, ";")[0]) {
	case codec.ContentTypeJSON:
		if msg, err := jsonparser.GetString(body, "error", "message"); err == nil {
			httpErr.Message = msg
		}
		if code, dataType, _, err := jsonparser.Get(body, "error", "code"); err == nil && dataType != jsonparser.NotExist {
			httpErr.Code = string(code)
		}
	case codec.ContentTypeCBOR:
		var envelope struct {
			Error *struct {
				Code    string `cbor:"code"`
				Message string `cbor:"message"`
			} `cbor:"error"`
		}
		if err := c.codec.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
			httpErr.Code = envelope.Error.Code
			httpErr.Message = envelope.Error.Message
		}
	default:
		httpErr.Message = strings.TrimSpace(string(body))
	}

	return httpErr
}

func newRequestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}
