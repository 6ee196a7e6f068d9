// Package gdata builds service-specialized clients for feed-based data APIs.
//
// # Service clients
//
// A [Client] is a generic feed connection bound to one backend service and one
// application. Creating it fixes three things for the lifetime of the client:
//
//   - the service identity and its version string, reported by [Client.ServiceVersion];
//   - the authentication scope (feed endpoint, login protocol and domain);
//   - the record kinds the service's feeds may contain, registered once on the
//     connection's extension profile.
//
// Use [New] for the backend defaults, or [NewWithAuth] when the client must log
// in against a non-default server. Both fail with a [*ConfigurationError] before
// any client exists.
//
// # Queries
//
// [Client.Execute] submits a [query.Query] exactly once and returns the result
// [feed.Feed]. Transport failures come back as [*ExecutionError] wrapping the
// connection's error unchanged.
//
// To turn untrusted request parameters into a query, use
// [github.com/feedkit/gdata.go/pkg/search].
//
// A Client is safe for concurrent use. Queries are not; each belongs to the
// request that built it.
package gdata
