// Package fetcher defines the fetch capability consumed by the checker
// and provides its HTTP implementation.
//
// The checker is agnostic to transport: anything that returns a status
// code, an optional content type, and an optional body stream satisfies
// the Fetcher interface. Tests substitute in-memory fakes.
package fetcher
