package errors

import (
	"strings"
	"testing"
)

func TestValidateSectionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "CSE-A", false},
		{"with spaces", "II MCA B", false},
		{"unicode", "Sección 1", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", 200), true},
		{"slash", "CSE/A", true},
		{"backslash", `CSE\A`, true},
		{"newline", "CSE\nA", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSectionName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSectionName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !IsData(err) {
				t.Errorf("ValidateSectionName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateRoomID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"lab", "LAB-1", false},
		{"numeric", "204", false},

		{"empty", "", true},
		{"traversal", "../etc", true},
		{"slash", "A/B", true},
		{"control", "A\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoomID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRoomID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		rows, cols int
		wantErr    bool
	}{
		{4, 4, false},
		{1, 1, false},
		{0, 4, true},
		{4, 0, true},
		{-1, 3, true},
		{100, 100, false},
		{100, 101, true},
		{MaxSeats, 1, false},
		{MaxSeats + 1, 1, true},
		{1 << 40, 1, true},
		{1 << 40, 1 << 40, true},
	}

	for _, tt := range tests {
		err := ValidateDimensions(tt.rows, tt.cols)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.rows, tt.cols, err, tt.wantErr)
		}
		if err != nil && !IsConfiguration(err) {
			t.Errorf("ValidateDimensions(%d, %d) should be a configuration error: %v", tt.rows, tt.cols, err)
		}
	}
}
