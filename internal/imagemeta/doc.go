// Package imagemeta extracts image metadata from in-memory buffers.
//
// The checker only needs pixel dimensions, so this package never
// decodes pixel data: raster formats go through DecodeConfig, ICO is
// parsed from its directory header, and SVG is scanned as XML. It also
// detects the presence of EXIF blocks in JPEG data.
package imagemeta
