package imagemeta

import (
	exif "github.com/dsoprea/go-exif/v3"
)

// HasEXIFMetadata reports whether the buffer contains an EXIF block.
// Presence alone is what the icon checks care about: an icon should be
// export-optimized, and any EXIF block means it was not.
//
// Detection only; no tags are extracted and the buffer is never
// modified.
func HasEXIFMetadata(buf []byte) bool {
	rawExif, err := exif.SearchAndExtractExif(buf)
	if err != nil {
		// Includes exif.ErrNoExif for clean images.
		return false
	}
	return len(rawExif) > 0
}
