package store

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidRating is returned when a rating is not an integer between 0 and 5.
	ErrInvalidRating = errors.New("rating must be an integer between 0 and 5")

	// ErrInvalidURL is returned when a URL is not an absolute http or https URL.
	ErrInvalidURL = errors.New("url must be an absolute http or https URL")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

const (
	MinRating = 0
	MaxRating = 5
)

// ParseRating converts a decoded JSON rating into an int. Numbers and numeric
// strings are accepted as long as they hold an integer in [MinRating, MaxRating].
func ParseRating(v any) (int, error) {
	var (
		f   float64
		err error
	)
	switch r := v.(type) {
	case json.Number:
		f, err = r.Float64()
	case float64:
		f = r
	case int:
		f = float64(r)
	case string:
		s := strings.TrimSpace(r)
		if s == "" {
			return 0, ErrInvalidRating
		}
		f, err = strconv.ParseFloat(s, 64)
	default:
		return 0, ErrInvalidRating
	}
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) || f < MinRating || f > MaxRating {
		return 0, ErrInvalidRating
	}
	return int(f), nil
}

// ValidateURL checks that raw is an absolute web URL with an http or https scheme.
func ValidateURL(raw string) error {
	if err := validate.Var(raw, "required,http_url"); err != nil {
		return ErrInvalidURL
	}
	return nil
}
