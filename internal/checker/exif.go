package checker

import (
	"strings"

	"github.com/nao1215/iconaudit/internal/imagemeta"
	"github.com/nao1215/iconaudit/internal/model"
)

// exifMessage builds a warning message when a fetched JPEG icon carries
// EXIF metadata. EXIF blocks inflate an asset that browsers fetch on
// every cold load, and camera-produced icons can leak location or
// device information.
//
// Only JPEG is inspected: PNG and ICO carry no EXIF in practice, and
// SVG is text.
func exifMessage(output *ClassificationOutput, id model.MessageID) (model.CheckerMessage, bool) {
	if output == nil || len(output.Raw) == 0 {
		return model.CheckerMessage{}, false
	}
	if !strings.HasPrefix(output.Content, "data:image/jpeg") {
		return model.CheckerMessage{}, false
	}
	if !imagemeta.HasEXIFMetadata(output.Raw) {
		return model.CheckerMessage{}, false
	}
	return model.NewMessage(id, "The icon contains EXIF metadata; strip it to reduce size and avoid leaking capture details."), true
}
