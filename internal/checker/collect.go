package checker

import (
	"bytes"
	"io"
)

// Collect drains a byte stream into a single contiguous buffer, closing
// the stream afterwards. Chunks are concatenated in arrival order; no
// assumption is made about chunk sizes or the total length.
//
// The upstream fetcher already caps the stream length, so Collect itself
// imposes no limit.
func Collect(stream io.ReadCloser) ([]byte, error) {
	defer stream.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, stream); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
