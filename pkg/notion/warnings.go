package notion

import "fmt"

// WarningCode categorizes compile warnings.
type WarningCode string

const (
	WarningEmptyToggle               WarningCode = "EMPTY_TOGGLE"
	WarningUnsupportedBlock          WarningCode = "UNSUPPORTED_BLOCK"
	WarningMissingImageURL           WarningCode = "MISSING_IMAGE_URL"
	WarningMissingEmbedURL           WarningCode = "MISSING_EMBED_URL"
	WarningMissingBookmarkURL        WarningCode = "MISSING_BOOKMARK_URL"
	WarningUnsupportedTableStructure WarningCode = "UNSUPPORTED_TABLE_STRUCTURE"
	WarningMissingTitle              WarningCode = "MISSING_TITLE"
	WarningUnsupportedProperty       WarningCode = "UNSUPPORTED_PROPERTY"
	WarningMalformedDate             WarningCode = "MALFORMED_DATE"
	WarningMalformedSlug             WarningCode = "MALFORMED_SLUG"
)

// Warning is a non-fatal problem found while compiling. The offending block
// or property was dropped; compilation carried on.
type Warning struct {
	Code      WarningCode `json:"code"`
	Message   string      `json:"message"`
	BlockID   string      `json:"blockId,omitempty"`
	BlockType string      `json:"blockType,omitempty"`
}

func (w Warning) String() string {
	switch {
	case w.BlockID != "":
		return fmt.Sprintf("%s: %s (%s %s)", w.Code, w.Message, w.BlockType, w.BlockID)
	case w.BlockType != "":
		return fmt.Sprintf("%s: %s (%s)", w.Code, w.Message, w.BlockType)
	default:
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
}

// WarningFunc receives warnings synchronously, in visitation order. It is a
// side channel: whether one is installed never changes the compiled output.
type WarningFunc func(Warning)

// Tee returns a WarningFunc that forwards to every non-nil fn.
func Tee(fns ...WarningFunc) WarningFunc {
	return func(w Warning) {
		for _, fn := range fns {
			if fn != nil {
				fn(w)
			}
		}
	}
}

// Collector accumulates warnings for callers that want them as a list.
type Collector struct {
	Warnings []Warning
}

// Add appends w. Pass c.Add wherever a WarningFunc is expected.
func (c *Collector) Add(w Warning) {
	c.Warnings = append(c.Warnings, w)
}

func (c *Collector) Codes() []WarningCode {
	codes := make([]WarningCode, 0, len(c.Warnings))
	for _, w := range c.Warnings {
		codes = append(codes, w.Code)
	}
	return codes
}

func (c *Collector) Len() int {
	return len(c.Warnings)
}

// pageWarning builds a warning about the page's property bag.
func pageWarning(code WarningCode, format string, args ...any) Warning {
	return Warning{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		BlockType: "page",
	}
}
