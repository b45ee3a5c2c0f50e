package screen

// Reference layout, measured on a 1920x1080 reward screen
const (
	ReferenceWidth    = 1920
	ReferenceHeight   = 1080
	ReferenceFrame    = 243
	ReferenceBottom   = 460
	ReferenceLineSize = 24
)

// Recognition windows
const (
	// MaxGrowingLines bounds the growing-window strategy
	MaxGrowingLines = 8
)

// FixedWindows are the line counts tried before growing line by line
var FixedWindows = []int{3, 2}

// OCR misreads corrected before matching
var corrections = []struct{ from, to string }{
	{"Primie", "Prime"},
	{"Bursten", "Burston"},
	{"Recelver", "Receiver"},
}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgFixedWindowMatched = "Fixed window matched"
	LogMsgGrowingWindowDone  = "Growing window finished"
	LogMsgDebugDumpFailed    = "Failed to save debug crop"
)
