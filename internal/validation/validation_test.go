package validation_test

import (
	"errors"
	"testing"

	"github.com/JasVita/wealthpilot-portal/internal/apperrors"
	"github.com/JasVita/wealthpilot-portal/internal/validation"
)

func TestValidateClientID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr error
	}{
		{"42", 42, nil},
		{" 7 ", 7, nil},
		{"", 0, apperrors.ErrMissingClientID},
		{"abc", 0, apperrors.ErrInvalidClientID},
		{"0", 0, apperrors.ErrInvalidClientID},
		{"-3", 0, apperrors.ErrInvalidClientID},
	}

	for _, tt := range tests {
		got, err := validation.ValidateClientID(tt.raw)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateClientID(%q): expected error %v, got %v", tt.raw, tt.wantErr, err)
		}
		if got != tt.want {
			t.Errorf("ValidateClientID(%q): expected %d, got %d", tt.raw, tt.want, got)
		}
	}
}

func TestValidatePeriod(t *testing.T) {
	t.Run("all empty is valid", func(t *testing.T) {
		year, month, from, to, err := validation.ValidatePeriod("", "", "", "")
		if err != nil || year != nil || month != nil || from != "" || to != "" {
			t.Errorf("Expected nothing parsed, got %v %v %q %q %v", year, month, from, to, err)
		}
	})

	t.Run("parses year, month and dates", func(t *testing.T) {
		year, month, from, to, err := validation.ValidatePeriod("2025", "3", "2025-01-01", "2025-03-31T00:00:00Z")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if *year != 2025 || *month != 3 {
			t.Errorf("Expected 2025-03, got %d-%d", *year, *month)
		}
		if from != "2025-01-01" || to != "2025-03-31" {
			t.Errorf("Expected normalized dates, got %q %q", from, to)
		}
	})

	t.Run("rejects out of range month", func(t *testing.T) {
		_, _, _, _, err := validation.ValidatePeriod("2025", "13", "", "")
		if !errors.Is(err, apperrors.ErrInvalidPeriod) {
			t.Errorf("Expected ErrInvalidPeriod, got %v", err)
		}
		var verr *validation.Error
		if !errors.As(err, &verr) || verr.Fields["month"] == "" {
			t.Errorf("Expected month field error, got %v", err)
		}
	})

	t.Run("rejects unparseable dates", func(t *testing.T) {
		_, _, _, _, err := validation.ValidatePeriod("", "", "yesterday", "")
		if !errors.Is(err, apperrors.ErrInvalidPeriod) {
			t.Errorf("Expected ErrInvalidPeriod, got %v", err)
		}
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, _, _, _, err := validation.ValidatePeriod("", "", "2025-06-01", "2025-01-01")
		if !errors.Is(err, apperrors.ErrInvalidDateRange) {
			t.Errorf("Expected ErrInvalidDateRange, got %v", err)
		}
	})
}

func TestValidateUUID(t *testing.T) {
	if err := validation.ValidateUUID("550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Errorf("Expected valid UUID, got %v", err)
	}
	if err := validation.ValidateUUID("not-a-uuid"); !errors.Is(err, apperrors.ErrInvalidUUID) {
		t.Errorf("Expected ErrInvalidUUID, got %v", err)
	}
}
