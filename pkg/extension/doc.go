// Package extension holds the record kinds a feed decoder recognizes.
//
// A service declares the kinds its feeds may contain by registering one or more
// [Schema] values onto a [Profile]. The profile belongs to a protocol client
// (see [github.com/feedkit/gdata.go/pkg/connection]) rather than to the process,
// so two clients for different services never see each other's kinds.
//
// Registration is idempotent per kind. Declaring the same kind twice leaves a
// single parsing rule in place; declaring a kind again with a different
// namespace or element is rejected.
package extension
