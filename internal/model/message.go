package model

// MessageID identifies exactly which check produced a message.
// Every observer callback in the checker maps to one id per icon
// category, so a report consumer can match on ids without parsing text.
type MessageID string

// Desktop favicon message ids.
const (
	// MsgDesktopNoHref is emitted when no favicon reference was declared.
	MsgDesktopNoHref MessageID = "desktop_icon_no_href"

	// MsgDesktop404 is emitted when the favicon URL returned 404.
	MsgDesktop404 MessageID = "desktop_icon_404"

	// MsgDesktopCannotGet is emitted for any non-404 status >= 300.
	MsgDesktopCannotGet MessageID = "desktop_icon_cannot_get"

	// MsgDesktopDownloadable is emitted when the favicon body was fetched.
	MsgDesktopDownloadable MessageID = "desktop_icon_downloadable"

	// MsgDesktopSquare is emitted when the favicon width equals its height.
	MsgDesktopSquare MessageID = "desktop_icon_square"

	// MsgDesktopNotSquare is emitted when width and height differ.
	MsgDesktopNotSquare MessageID = "desktop_icon_not_square"

	// MsgDesktopRightSize is emitted when the size matches the declared size.
	MsgDesktopRightSize MessageID = "desktop_icon_right_size"

	// MsgDesktopWrongSize is emitted when the size differs from the declared size.
	MsgDesktopWrongSize MessageID = "desktop_icon_wrong_size"

	// MsgDesktopEXIFMetadata is emitted when a JPEG favicon carries EXIF data.
	MsgDesktopEXIFMetadata MessageID = "desktop_icon_exif_metadata"
)

// Touch icon message ids.
const (
	MsgTouchIconNoHref       MessageID = "touch_icon_no_href"
	MsgTouchIcon404          MessageID = "touch_icon_404"
	MsgTouchIconCannotGet    MessageID = "touch_icon_cannot_get"
	MsgTouchIconDownloadable MessageID = "touch_icon_downloadable"
	MsgTouchIconSquare       MessageID = "touch_icon_square"
	MsgTouchIconNotSquare    MessageID = "touch_icon_not_square"
	MsgTouchIconRightSize    MessageID = "touch_icon_right_size"
	MsgTouchIconWrongSize    MessageID = "touch_icon_wrong_size"
	MsgTouchIconEXIFMetadata MessageID = "touch_icon_exif_metadata"
)

// Web-app-manifest icon message ids.
const (
	MsgManifestIconNoHref       MessageID = "manifest_icon_no_href"
	MsgManifestIcon404          MessageID = "manifest_icon_404"
	MsgManifestIconCannotGet    MessageID = "manifest_icon_cannot_get"
	MsgManifestIconDownloadable MessageID = "manifest_icon_downloadable"
	MsgManifestIconSquare       MessageID = "manifest_icon_square"
	MsgManifestIconNotSquare    MessageID = "manifest_icon_not_square"
	MsgManifestIconRightSize    MessageID = "manifest_icon_right_size"
	MsgManifestIconWrongSize    MessageID = "manifest_icon_wrong_size"
	MsgManifestIconEXIFMetadata MessageID = "manifest_icon_exif_metadata"
)

// messageStatusMapping maps message ids to their fixed severity.
// The mapping is the single source of truth: a message's status is fully
// determined by its id and is never computed ad hoc at emission sites.
//
// Design decision: We use a map rather than embedding severity at each
// call site because:
// 1. It keeps the severity policy reviewable in one place
// 2. Observers stay trivial (id + text, nothing else)
// 3. Changing a severity cannot drift between categories
var messageStatusMapping = map[MessageID]Status{
	// ERROR - the icon is missing or broken
	MsgDesktopNoHref:         StatusError,
	MsgDesktop404:            StatusError,
	MsgDesktopCannotGet:      StatusError,
	MsgDesktopNotSquare:      StatusError,
	MsgTouchIconNoHref:       StatusError,
	MsgTouchIcon404:          StatusError,
	MsgTouchIconCannotGet:    StatusError,
	MsgTouchIconNotSquare:    StatusError,
	MsgManifestIconNoHref:    StatusError,
	MsgManifestIcon404:       StatusError,
	MsgManifestIconCannotGet: StatusError,
	MsgManifestIconNotSquare: StatusError,

	// WARNING - the icon works but should be fixed
	MsgDesktopWrongSize:         StatusWarning,
	MsgTouchIconWrongSize:       StatusWarning,
	MsgManifestIconWrongSize:    StatusWarning,
	MsgDesktopEXIFMetadata:      StatusWarning,
	MsgTouchIconEXIFMetadata:    StatusWarning,
	MsgManifestIconEXIFMetadata: StatusWarning,

	// OK - positive confirmations
	MsgDesktopDownloadable:      StatusOk,
	MsgDesktopSquare:            StatusOk,
	MsgDesktopRightSize:         StatusOk,
	MsgTouchIconDownloadable:    StatusOk,
	MsgTouchIconSquare:          StatusOk,
	MsgTouchIconRightSize:       StatusOk,
	MsgManifestIconDownloadable: StatusOk,
	MsgManifestIconSquare:       StatusOk,
	MsgManifestIconRightSize:    StatusOk,
}

// StatusOf returns the fixed severity for a message id.
// Unknown ids default to StatusOk so that a stale report read back from
// the database never gains phantom errors.
func StatusOf(id MessageID) Status {
	if status, ok := messageStatusMapping[id]; ok {
		return status
	}
	return StatusOk
}

// CheckerMessage is a single classified outcome of an icon check.
// Immutable once created; the message order within a report section
// reflects emission order from the classifier.
type CheckerMessage struct {
	// Status is the severity, fully determined by ID.
	Status Status `json:"status"`

	// ID identifies the check that produced this message.
	ID MessageID `json:"id"`

	// Text is the human-oriented description, including any values
	// (status codes, pixel sizes) observed during the check.
	Text string `json:"text"`
}

// NewMessage creates a CheckerMessage with the severity looked up from
// the static id mapping.
func NewMessage(id MessageID, text string) CheckerMessage {
	return CheckerMessage{
		Status: StatusOf(id),
		ID:     id,
		Text:   text,
	}
}
