package search

import (
	"context"

	gdata "github.com/feedkit/gdata.go"
	"github.com/feedkit/gdata.go/pkg/feed"
	"github.com/feedkit/gdata.go/pkg/query"
)

// DefaultApplicationName identifies the client NewBuilder creates when it is
// given no executor.
const DefaultApplicationName = "feedkit-recipesearch-1"

// Executor submits a query once. *gdata.Client implements it.
type Executor interface {
	Execute(ctx context.Context, q *query.Query) (*feed.Feed, error)
}

// Result is what a search hands to presentation.
type Result struct {
	Query *query.Query
	Feed  *feed.Feed
}

type Option func(*Builder)

// WithVocabulary replaces the recipe vocabulary.
func WithVocabulary(v Vocabulary) Option {
	return func(b *Builder) {
		b.vocab = v
	}
}

// Builder builds and runs queries for one scope policy. It holds no
// per-request state and may be shared between goroutines as long as its
// executor can.
type Builder struct {
	exec  Executor
	scope query.Scope
	vocab Vocabulary
}

// NewBuilder returns a Builder running queries through exec. A nil exec is
// replaced by a Base client using the default endpoint.
func NewBuilder(exec Executor, scope query.Scope, opts ...Option) (*Builder, error) {
	if exec == nil {
		c, err := gdata.New(DefaultApplicationName, gdata.Base)
		if err != nil {
			return nil, err
		}
		exec = c
	}

	b := &Builder{
		exec:  exec,
		scope: scope,
		vocab: Recipes(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Builder) Scope() query.Scope {
	return b.scope
}

func (b *Builder) Vocabulary() Vocabulary {
	return b.vocab
}

// Default returns the browse query: the scope restriction, the vocabulary's
// item type and nothing else.
func (b *Builder) Default() *query.Query {
	q := query.New(b.scope)
	q.ItemType = b.vocab.ItemType
	return q
}

// Build returns the query described by p. Without the free-text parameter it
// is the browse query regardless of other parameters. Empty values count as
// absent; unknown parameters are ignored. The first invalid value fails the
// build with a *ValidationError.
func (b *Builder) Build(p Params) (*query.Query, error) {
	q := b.Default()
	if !p.Has(b.vocab.QueryParam) {
		return q, nil
	}

	for _, f := range b.vocab.Fields {
		values := p[f.Param]
		switch f.Shape {
		case Single:
			if len(values) == 0 || values[0] == "" {
				continue
			}
			values = values[:1]
		case Multi:
			if len(values) == 0 {
				continue
			}
		}
		if err := f.Set(q, values); err != nil {
			return nil, &ValidationError{Param: f.Param, Value: values[0], Err: err}
		}
	}

	q.OwnItemsOnly = b.scope.OwnItemsOnly()
	return q, nil
}

// Execute submits q once through the executor. Executor failures are returned
// as they are.
func (b *Builder) Execute(ctx context.Context, q *query.Query) (*feed.Feed, error) {
	return b.exec.Execute(ctx, q)
}

// Search builds the query for p and executes it.
func (b *Builder) Search(ctx context.Context, p Params) (*Result, error) {
	q, err := b.Build(p)
	if err != nil {
		return nil, err
	}

	f, err := b.Execute(ctx, q)
	if err != nil {
		return nil, err
	}

	return &Result{Query: q, Feed: f}, nil
}
