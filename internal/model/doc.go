// Package model defines the data structures shared across iconaudit.
//
// This package contains the checker message taxonomy, the per-category
// report sections, and the aggregate favicon report. All entities are
// value records created once per audit run; nothing in this package
// mutates after construction.
//
// The model package has no dependencies on other internal packages,
// making it safe to import from anywhere in the codebase.
package model
