package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JasVita/wealthpilot-portal/internal/apperrors"
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

// ValidateClientID parses a required client_id parameter.
func ValidateClientID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperrors.ErrMissingClientID
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidClientID
	}
	return id, nil
}

// ValidatePeriod checks the optional year, month, from and to parameters.
// year must be an integer, month an integer in 1..12, and from/to dates with from <= to.
// It returns the parsed year and month (nil when absent) and from/to as YYYY-MM-DD.
func ValidatePeriod(yearRaw, monthRaw, fromRaw, toRaw string) (year, month *int, from, to string, err error) {
	errs := make(map[string]string)

	if yearRaw = strings.TrimSpace(yearRaw); yearRaw != "" {
		y, convErr := strconv.Atoi(yearRaw)
		if convErr != nil || y < 1900 || y > 9999 {
			errs["year"] = "year must be a four-digit integer"
		} else {
			year = &y
		}
	}

	if monthRaw = strings.TrimSpace(monthRaw); monthRaw != "" {
		m, convErr := strconv.Atoi(monthRaw)
		if convErr != nil || m < 1 || m > 12 {
			errs["month"] = "month must be an integer between 1 and 12"
		} else {
			month = &m
		}
	}

	var fromTime, toTime time.Time
	if fromRaw = strings.TrimSpace(fromRaw); fromRaw != "" {
		t, parseErr := ParseDate(fromRaw)
		if parseErr != nil {
			errs["from"] = "from must be a date (YYYY-MM-DD)"
		} else {
			fromTime = t
			from = t.Format("2006-01-02")
		}
	}
	if toRaw = strings.TrimSpace(toRaw); toRaw != "" {
		t, parseErr := ParseDate(toRaw)
		if parseErr != nil {
			errs["to"] = "to must be a date (YYYY-MM-DD)"
		} else {
			toTime = t
			to = t.Format("2006-01-02")
		}
	}

	if len(errs) > 0 {
		return nil, nil, "", "", fmt.Errorf("%w: %w", apperrors.ErrInvalidPeriod, &Error{Fields: errs})
	}
	if from != "" && to != "" && fromTime.After(toTime) {
		return nil, nil, "", "", apperrors.ErrInvalidDateRange
	}
	return year, month, from, to, nil
}

// ParseDate parses a date string in "2006-01-02" or RFC3339 format.
func ParseDate(str string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", str)
	if err != nil {
		t, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return t.UTC(), nil
}
