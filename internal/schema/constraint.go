package schema

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Rana718/synthgen/internal/errors"
)

const (
	DateLayout     = "2006-01-02"
	DatetimeLayout = "2006-01-02 15:04:05"

	// DatetimeLiteral on a date field switches output to timestamps.
	DatetimeLiteral = "datetime"
)

var (
	numericRangeRe = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*-\s*(-?\d+(?:\.\d+)?)\s*$`)
	dateRangeRe    = regexp.MustCompile(`^\s*(\d{4}-\d{2}-\d{2})\s*-\s*(\d{4}-\d{2}-\d{2})\s*$`)
)

// NumericRange is a closed interval [Min, Max].
type NumericRange struct {
	Min float64
	Max float64
}

func (r NumericRange) Valid() bool {
	return r.Min <= r.Max
}

// DateRange is a closed interval of days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Valid() bool {
	return !r.End.Before(r.Start)
}

// Days is the number of whole days between Start and End.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

var defaultCategories = []string{"Category A", "Category B", "Category C"}

// DefaultNumericRange is used when a numeric constraint is missing or malformed.
func DefaultNumericRange(t FieldType) NumericRange {
	if t == TypeFloat {
		return NumericRange{Min: 0, Max: 1000}
	}
	return NumericRange{Min: 1, Max: 1000}
}

// DefaultDateRange covers the past year up to today.
func DefaultDateRange(today time.Time) DateRange {
	return DateRange{Start: today.AddDate(-1, 0, 0), End: today}
}

func DefaultCategories() []string {
	out := make([]string, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

func ParseNumericRange(s string) (NumericRange, error) {
	m := numericRangeRe.FindStringSubmatch(s)
	if m == nil {
		return NumericRange{}, errors.Newf(errors.ErrTypeConstraint, "numeric constraint %q does not match min-max", s)
	}
	lo, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return NumericRange{}, errors.Wrapf(err, errors.ErrTypeConstraint, "invalid minimum in %q", s)
	}
	hi, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return NumericRange{}, errors.Wrapf(err, errors.ErrTypeConstraint, "invalid maximum in %q", s)
	}
	r := NumericRange{Min: lo, Max: hi}
	if !r.Valid() {
		return NumericRange{}, errors.Newf(errors.ErrTypeConstraint, "numeric constraint %q has min greater than max", s)
	}
	return r, nil
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DatetimeLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, errors.ErrTypeConstraint, "invalid date %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func ParseDateRange(s string) (DateRange, error) {
	m := dateRangeRe.FindStringSubmatch(s)
	if m == nil {
		return DateRange{}, errors.Newf(errors.ErrTypeConstraint, "date constraint %q does not match YYYY-MM-DD - YYYY-MM-DD", s)
	}
	start, err := ParseDate(m[1])
	if err != nil {
		return DateRange{}, err
	}
	end, err := ParseDate(m[2])
	if err != nil {
		return DateRange{}, err
	}
	r := DateRange{Start: start, End: end}
	if !r.Valid() {
		return DateRange{}, errors.Newf(errors.ErrTypeConstraint, "date constraint %q ends before it starts", s)
	}
	return r, nil
}

// ParseCategories splits a comma-separated list; every trimmed element must be non-empty.
func ParseCategories(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New(errors.ErrTypeConstraint, "category constraint is empty")
	}
	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, errors.Newf(errors.ErrTypeConstraint, "category constraint %q contains an empty value", s)
		}
		values = append(values, p)
	}
	return values, nil
}

// ValidateConstraint checks a field's constraint against its type. Types with
// optional constraints accept an empty string.
func ValidateConstraint(f FieldSchema) error {
	c := strings.TrimSpace(f.Constraint)
	switch f.Type {
	case TypeInt, TypeFloat:
		if c == "" {
			return nil
		}
		_, err := ParseNumericRange(c)
		return err
	case TypeDate, TypeDatetime:
		if c == "" || strings.EqualFold(c, DatetimeLiteral) {
			return nil
		}
		_, err := ParseDateRange(c)
		return err
	case TypeCategory:
		_, err := ParseCategories(c)
		return err
	}
	return nil
}
