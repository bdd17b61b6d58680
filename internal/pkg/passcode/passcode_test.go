package passcode

import (
	"strconv"
	"testing"
)

func TestNumericGenerate(t *testing.T) {

	t.Run("FormatAndRange", func(t *testing.T) {

		// Arrange
		gen := NewNumeric()

		// Act & Assert
		for range 500 {
			code, err := gen.Generate()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(code) != Length {
				t.Fatalf("expected %d digits, got %q", Length, code)
			}

			n, err := strconv.Atoi(code)
			if err != nil {
				t.Fatalf("expected numeric code, got %q", code)
			}
			if n < 0 || n > 999999 {
				t.Fatalf("code out of range: %q", code)
			}
		}
	})

	t.Run("LeadingZerosPreserved", func(t *testing.T) {

		// Arrange
		gen := NewNumeric()

		// Act
		found := false
		for range 10_000 {
			code, err := gen.Generate()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if code[0] == '0' {
				found = true
				break
			}
		}

		// Assert
		if !found {
			t.Fatalf("expected at least one zero-padded code in 10000 draws")
		}
	})
}
