package errors

import (
	"strings"
	"unicode"
)

// maxSectionNameLength bounds section identifiers. Sheet names in xlsx
// workbooks are capped at 31 characters, but YAML and JSON rosters are not,
// so the limit here is looser.
const maxSectionNameLength = 128

// ValidateSectionName validates a section identifier.
//
// Section names end up in output file names, SVG text and cache keys, so the
// rules reject anything that could be read as a path or break markup:
//   - No empty or whitespace-only names
//   - No control characters
//   - No path separators
//   - Maximum length of 128 characters
func ValidateSectionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidRoster, "section name cannot be empty")
	}

	if len(name) > maxSectionNameLength {
		return New(ErrCodeInvalidRoster, "section name too long (max %d characters)", maxSectionNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRoster, "section name %q contains control characters", name)
		}
	}

	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidRoster, "section name %q cannot contain path separators", name)
	}

	return nil
}

// ValidateRoomID validates a room identifier shown in the report header and
// used to derive output file names.
func ValidateRoomID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidConfig, "room id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return New(ErrCodeInvalidConfig, "room id %q cannot contain path components", id)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "room id %q contains control characters", id)
		}
	}
	return nil
}

// MaxSeats bounds the size of one room grid. The grid is allocated up front,
// so an unbounded request could exhaust memory.
const MaxSeats = 10000

// ValidateDimensions checks that a room grid has at least one row and one
// column and no more than MaxSeats seats.
func ValidateDimensions(rows, cols int) error {
	if rows <= 0 {
		return New(ErrCodeInvalidConfig, "rows must be positive, got %d", rows)
	}
	if cols <= 0 {
		return New(ErrCodeInvalidConfig, "cols must be positive, got %d", cols)
	}
	if rows > MaxSeats/cols {
		return New(ErrCodeInvalidConfig, "room of %d×%d exceeds the limit of %d seats", rows, cols, MaxSeats)
	}
	return nil
}
