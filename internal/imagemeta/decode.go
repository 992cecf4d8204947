package imagemeta

import (
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strconv"
	"strings"
)

// Dimensions holds the pixel dimensions of an image.
// A zero value means the format carried no usable dimension information
// (possible for SVG); that is not an error.
type Dimensions struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int
}

// ErrUnknownFormat is returned when the buffer matches none of the
// supported icon formats (PNG, JPEG, GIF, ICO, SVG).
var ErrUnknownFormat = errors.New("unknown image format")

// Magic byte prefixes used for format sniffing.
// ICO has no ASCII magic; its header starts with reserved=0, type=1.
var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
	jpegMagic = []byte{0xFF, 0xD8}
	gifMagic  = []byte("GIF8")
	icoMagic  = []byte{0x00, 0x00, 0x01, 0x00}
)

// DecodeDimensions extracts the pixel dimensions from an image buffer.
// The format is sniffed from the leading bytes; pixel data is never
// decoded.
//
// Design decision: We sniff magic bytes ourselves rather than relying
// on the server-declared content type because icon deployments
// routinely serve PNG files with an .ico extension and an image/x-icon
// header. The bytes are the only trustworthy signal.
func DecodeDimensions(buf []byte) (Dimensions, error) {
	switch {
	case bytes.HasPrefix(buf, pngMagic):
		return decodeConfig(buf, "png", func(r io.Reader) (int, int, error) {
			cfg, err := png.DecodeConfig(r)
			return cfg.Width, cfg.Height, err
		})

	case bytes.HasPrefix(buf, jpegMagic):
		return decodeConfig(buf, "jpeg", func(r io.Reader) (int, int, error) {
			cfg, err := jpeg.DecodeConfig(r)
			return cfg.Width, cfg.Height, err
		})

	case bytes.HasPrefix(buf, gifMagic):
		return decodeConfig(buf, "gif", func(r io.Reader) (int, int, error) {
			cfg, err := gif.DecodeConfig(r)
			return cfg.Width, cfg.Height, err
		})

	case bytes.HasPrefix(buf, icoMagic):
		return decodeICO(buf)

	case looksLikeSVG(buf):
		return decodeSVG(buf)

	default:
		return Dimensions{}, ErrUnknownFormat
	}
}

func decodeConfig(buf []byte, format string, decode func(io.Reader) (int, int, error)) (Dimensions, error) {
	width, height, err := decode(bytes.NewReader(buf))
	if err != nil {
		return Dimensions{}, fmt.Errorf("failed to decode %s header: %w", format, err)
	}
	return Dimensions{Width: width, Height: height}, nil
}

// ICO layout constants. The file starts with a 6-byte ICONDIR header
// (reserved, type, image count) followed by 16-byte ICONDIRENTRY
// records whose first two bytes are width and height, where 0 encodes
// 256.
const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

// decodeICO reads the ICO directory and returns the dimensions of the
// largest embedded image. ICO files bundle multiple resolutions of the
// same artwork; the largest entry is what the size checks care about.
func decodeICO(buf []byte) (Dimensions, error) {
	if len(buf) < icoHeaderSize {
		return Dimensions{}, errors.New("ico: truncated header")
	}

	count := int(binary.LittleEndian.Uint16(buf[4:6]))
	if count == 0 {
		return Dimensions{}, errors.New("ico: no images in directory")
	}
	if len(buf) < icoHeaderSize+count*icoEntrySize {
		return Dimensions{}, errors.New("ico: truncated directory")
	}

	best := Dimensions{}
	for i := 0; i < count; i++ {
		entry := buf[icoHeaderSize+i*icoEntrySize:]
		width := int(entry[0])
		height := int(entry[1])
		// 0 means 256 in ICO directory entries.
		if width == 0 {
			width = 256
		}
		if height == 0 {
			height = 256
		}
		if width*height > best.Width*best.Height {
			best = Dimensions{Width: width, Height: height}
		}
	}
	return best, nil
}

// svgSniffLimit bounds how far into the buffer we look for an <svg> tag.
const svgSniffLimit = 1024

// looksLikeSVG reports whether the buffer appears to be an SVG document.
// SVG has no magic bytes, so we look for the root tag near the start,
// allowing for XML declarations, doctypes, and comments.
func looksLikeSVG(buf []byte) bool {
	head := buf
	if len(head) > svgSniffLimit {
		head = head[:svgSniffLimit]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// decodeSVG extracts dimensions from the root <svg> element.
// Preference order: explicit width/height attributes, then the viewBox.
// An SVG without either yields zero dimensions and no error; the
// classifier treats that as "nothing usable".
func decodeSVG(buf []byte) (Dimensions, error) {
	decoder := xml.NewDecoder(bytes.NewReader(buf))
	// Icons in the wild reference external DTDs and foreign namespaces;
	// neither matters for reading two attributes.
	decoder.Strict = false

	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Dimensions{}, errors.New("svg: no svg root element")
			}
			return Dimensions{}, fmt.Errorf("svg: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return Dimensions{}, errors.New("svg: root element is not svg")
		}

		var width, height int
		var viewBox string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "width":
				width = parseSVGLength(attr.Value)
			case "height":
				height = parseSVGLength(attr.Value)
			case "viewBox":
				viewBox = attr.Value
			}
		}

		if width > 0 && height > 0 {
			return Dimensions{Width: width, Height: height}, nil
		}
		if w, h, ok := parseViewBox(viewBox); ok {
			return Dimensions{Width: w, Height: h}, nil
		}
		return Dimensions{}, nil
	}
}

// parseSVGLength parses an SVG length attribute into whole pixels.
// Only unitless and px values are meaningful for icon sizing; relative
// units (em, %) yield 0.
func parseSVGLength(value string) int {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "px"))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return 0
	}
	return int(f)
}

// parseViewBox extracts the width and height from a viewBox attribute
// ("min-x min-y width height").
func parseViewBox(viewBox string) (int, int, bool) {
	fields := strings.Fields(strings.ReplaceAll(viewBox, ",", " "))
	if len(fields) != 4 {
		return 0, 0, false
	}
	w := parseSVGLength(fields[2])
	h := parseSVGLength(fields[3])
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
