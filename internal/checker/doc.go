// Package checker implements the icon outcome classification core.
//
// The central piece is Classify, a single decision sequence shared by
// every icon category (desktop favicon, touch icon, manifest icon).
// Each category supplies its own IconObserver implementation that maps
// the generic outcome events onto category-labeled report messages, so
// one algorithm drives three differently-labeled report sections.
//
// The package also carries the classifier's supporting primitives:
// reference resolution against a base document URL, declared size
// attribute parsing, MIME inference from file extensions, and byte
// stream collection.
package checker
