package search

// Params is the raw parameter set of one request, e.g. url.Values.
type Params map[string][]string

// Get returns the first value of key, or "".
func (p Params) Get(key string) string {
	if vs := p[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Has reports whether key carries at least one value, even an empty one.
func (p Params) Has(key string) bool {
	return len(p[key]) > 0
}
