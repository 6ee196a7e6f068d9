// Package search turns loosely typed request parameters into validated feed
// queries and runs them.
//
// A [Builder] is configured once with a scope policy and a [Vocabulary], the
// table of parameters it recognizes. For every request it either returns the
// browse query (when the free-text parameter is missing) or assembles a query
// field by field, failing on the first value that does not validate:
//
//	b, err := search.NewBuilder(client, query.AllItems)
//	if err != nil {
//		return err
//	}
//	res, err := b.Search(ctx, search.Params(r.URL.Query()))
//
// The scope policy always wins over anything a request carries.
package search
