package errors

import (
	"strings"
	"unicode"
)

// ValidateFrame validates the target bounding rectangle for a layout.
// Both dimensions must be strictly positive; the layout contract requires
// the computed bounding box to fit strictly inside the frame, which is
// impossible for a degenerate rectangle.
func ValidateFrame(width, height float64) error {
	if width <= 0 {
		return New(ErrCodeInvalidFrame, "frame width must be positive, got %v", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidFrame, "frame height must be positive, got %v", height)
	}
	return nil
}

// ValidateSpacing validates the gap enforced between elements and rows.
func ValidateSpacing(spacing float64) error {
	if spacing < 0 {
		return New(ErrCodeInvalidSpacing, "spacing cannot be negative, got %v", spacing)
	}
	return nil
}

// ValidateSource validates a media source reference for safety.
// It rejects values that could be used for path traversal or injection.
//
// The validation rules are intentionally conservative:
//   - No empty sources
//   - No control characters or null bytes
//   - No parent-directory traversal sequences
//   - Maximum length of 500 characters
//
// Remote URLs (http/https) are accepted as-is apart from the above.
func ValidateSource(src string) error {
	if src == "" {
		return New(ErrCodeInvalidSource, "media source cannot be empty")
	}

	const maxSourceLength = 500
	if len(src) > maxSourceLength {
		return New(ErrCodeInvalidSource, "media source too long (max %d characters)", maxSourceLength)
	}

	for _, r := range src {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidSource, "media source contains invalid characters")
		}
	}

	if strings.Contains(src, "..") {
		return New(ErrCodeInvalidSource, "media source cannot contain path traversal sequences (..)")
	}

	if strings.Contains(src, "\\") {
		return New(ErrCodeInvalidSource, "media source cannot contain backslashes")
	}

	return nil
}
