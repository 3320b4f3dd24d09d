// Package acl is the anti-corruption layer between the crawled site and the
// domain. Nothing about HTTP responses or page markup leaks past it.
//
// # Components
//
//   - [PageClient]: fetches a page body; every failure becomes a
//     [domain.NetworkError]
//   - [QuotePageParser]: turns a page body into a [domain.Page], using the
//     configured [Selectors]
//   - [MapHTTPError]: maps a response or client error to a domain error
//   - [TranslateSlice]: batch translation helper used by the parser
//
// # Error Handling Strategy
//
// The site signals failure in several ways, all translated here:
//   - transport errors, timeouts, cancellation → [domain.ErrNetwork]
//   - any non-2xx status → [domain.ErrNetwork] carrying the status code
//   - a body with no markup → [domain.ErrParse]
//   - a record without text or author → [domain.ErrMissingField]
//
// An error page body is never handed to the parser.
package acl
