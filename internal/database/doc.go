// Package database provides SQLite-based storage of audit history.
//
// Each audit run is stored as a JSON-serialized report keyed by a
// generated run id, which lets the compare command diff a site's
// current icon health against earlier runs without refetching anything.
package database
