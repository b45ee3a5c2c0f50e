package ocr

// Backend names
const (
	BackendCLI       = "cli"
	BackendGosseract = "gosseract"
)

// Whitelist restricts recognition to the characters item names are made of
const Whitelist = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Tesseract command line
const (
	argStdin        = "stdin"
	argStdout       = "stdout"
	argConfig       = "-c"
	argVersion      = "--version"
	whitelistConfig = "tessedit_char_whitelist="
	language        = "eng"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgEmptyRegion       = "region does not intersect the image"
	ErrMsgRecognizeFailed   = "text recognition failed"
	ErrMsgEncodeFailed      = "failed to encode region"
	ErrMsgUnavailable       = "ocr backend unavailable"
	ErrMsgUnknownBackend    = "unknown ocr backend"
	ErrMsgGosseractNotBuilt = "built without the gosseract tag"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgTesseractVersion = "Tesseract available"
	LogMsgRecognized       = "Region recognized"
	LogMsgGosseractVersion = "Tesseract library available"
)
