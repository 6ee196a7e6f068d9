package extension

import (
	"fmt"
	"sync"

	"github.com/feedkit/gdata.go/pkg/constants"
)

// Kind names a record kind, e.g. "cell" or "worksheet".
type Kind string

// Declaration tells a feed decoder how to recognize and materialize one record kind.
type Declaration struct {
	Kind      Kind
	Namespace string
	Element   string
	// New returns a pointer to an empty record the decoder fills.
	// A nil New keeps entries of this kind as untyped content.
	New func() any
}

func (d Declaration) sameRule(o Declaration) bool {
	return d.Kind == o.Kind && d.Namespace == o.Namespace && d.Element == o.Element
}

// Schema is a named, ordered set of declarations, usually one per feed type.
type Schema struct {
	Name         string
	Declarations []Declaration
}

// Profile is the set of kinds a protocol client understands.
// It is safe for concurrent use.
type Profile struct {
	mu    sync.RWMutex
	decls map[Kind]Declaration
	order []Kind
}

func NewProfile() *Profile {
	return &Profile{
		decls: make(map[Kind]Declaration),
	}
}

// Declare registers d. It reports whether d was new; re-declaring an identical
// rule is a no-op.
func (p *Profile) Declare(d Declaration) (bool, error) {
	if d.Kind == "" {
		return false, fmt.Errorf("%w: empty kind", constants.ErrConflictingDeclaration)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if prev, ok := p.decls[d.Kind]; ok {
		if !prev.sameRule(d) {
			return false, fmt.Errorf("%w: kind %q is declared as %s:%s", constants.ErrConflictingDeclaration, d.Kind, prev.Namespace, prev.Element)
		}
		return false, nil
	}

	p.decls[d.Kind] = d
	p.order = append(p.order, d.Kind)

	return true, nil
}

// DeclareSchema registers every declaration of s in order and returns how many
// were new. It stops at the first conflict.
func (p *Profile) DeclareSchema(s Schema) (int, error) {
	added := 0
	for _, d := range s.Declarations {
		ok, err := p.Declare(d)
		if err != nil {
			return added, fmt.Errorf("schema %s: %w", s.Name, err)
		}
		if ok {
			added++
		}
	}
	return added, nil
}

func (p *Profile) Lookup(k Kind) (Declaration, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	d, ok := p.decls[k]
	return d, ok
}

// Kinds returns the declared kinds in registration order.
func (p *Profile) Kinds() []Kind {
	p.mu.RLock()
	defer p.mu.RUnlock()
	kinds := make([]Kind, len(p.order))
	copy(kinds, p.order)
	return kinds
}

func (p *Profile) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}
