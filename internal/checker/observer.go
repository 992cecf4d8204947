package checker

// IconObserver receives the outcome events of one icon classification.
//
// Design decision: We model the per-category behavior as a plain
// capability interface rather than an embedded base type with overrides.
// The classifier takes the observer as a parameter, each category
// (desktop favicon, touch icon, manifest icon) implements it by
// appending its own category-labeled report messages, and tests
// substitute a recording fake.
//
// Within one classification the events arrive in a fixed priority
// order, never reordered and never concurrently.
type IconObserver interface {
	// NoHref is emitted when no icon reference was declared.
	// No fetch is attempted in that case.
	NoHref()

	// Icon404 is emitted when the icon URL returned 404.
	Icon404()

	// CannotGet is emitted for any non-404 status >= 300,
	// carrying the literal status code.
	CannotGet(statusCode int)

	// Downloadable is emitted once a response body is available,
	// before the body is drained or decoded.
	Downloadable()

	// Square is emitted when the decoded width equals the height.
	Square(size int)

	// NotSquare is emitted when the decoded width and height differ.
	NotSquare(width, height int)

	// RightSize is emitted after Square when an expected size was given
	// and matches exactly.
	RightSize(size int)

	// WrongSize is emitted after Square when an expected size was given
	// and does not match.
	WrongSize(size int)
}
