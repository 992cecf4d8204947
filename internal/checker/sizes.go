package checker

import (
	"regexp"
	"strconv"
)

// sizeAttrRegex matches a single WxH token in a declared sizes attribute.
var sizeAttrRegex = regexp.MustCompile(`(\d+)x(\d+)`)

// ParseSizeAttribute parses a declared "WxH" size attribute into a
// square pixel dimension. It returns 0 when no WxH token is present or
// when the two numbers are unequal.
//
// Only the first match is considered: "16x16 32x32" yields 16, not a
// set. That is a deliberate simplification carried over from the
// original checker; callers wanting all declared sizes must split the
// attribute themselves.
func ParseSizeAttribute(sizes string) int {
	match := sizeAttrRegex.FindStringSubmatch(sizes)
	if match == nil {
		return 0
	}

	width, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	height, err := strconv.Atoi(match[2])
	if err != nil {
		return 0
	}

	if width != height {
		return 0
	}
	return width
}
