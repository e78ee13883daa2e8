// Package weekday converts between the numbering used on the wire, the
// canonical in-memory numbering (0 = Monday) and human readable names.
package weekday

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Base is the number a backend uses for Monday.
type Base int

const (
	Zero Base = 0 // Flask backend, current firmware
	One  Base = 1 // legacy 1..7 front-end
)

// ParseBase validates a configured day base.
func ParseBase(n int) (Base, error) {
	switch Base(n) {
	case Zero, One:
		return Base(n), nil
	}
	return Zero, fmt.Errorf("day base must be 0 or 1, got %d", n)
}

// ToWire converts canonical days to the backend's numbering.
// The result is never nil so it encodes as [] rather than null.
func (b Base) ToWire(days []int) []int {
	out := make([]int, 0, len(days))
	for _, d := range days {
		out = append(out, d+int(b))
	}
	return out
}

// FromWire converts the backend's numbering to canonical days.
func (b Base) FromWire(days []int) []int {
	if days == nil {
		return nil
	}
	out := make([]int, 0, len(days))
	for _, d := range days {
		out = append(out, d-int(b))
	}
	return out
}

type Locale string

const (
	Russian Locale = "ru"
	English Locale = "en"
)

var shortNames = map[Locale][7]string{
	Russian: {"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"},
	English: {"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
}

var inactiveMarkers = map[Locale]string{
	Russian: "(выкл)",
	English: "(off)",
}

// ParseLocale accepts "ru" or "en"; empty means Russian.
func ParseLocale(s string) (Locale, error) {
	switch l := Locale(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return Russian, nil
	case Russian, English:
		return l, nil
	}
	return "", fmt.Errorf("unsupported locale %q (want ru or en)", s)
}

// Name returns the short name of a canonical day, or the bare number when
// the day is out of range.
func Name(l Locale, day int) string {
	names, ok := shortNames[l]
	if !ok {
		names = shortNames[Russian]
	}
	if day < 0 || day > 6 {
		return strconv.Itoa(day)
	}
	return names[day]
}

// InactiveMarker is appended to rows of disabled alarms.
func InactiveMarker(l Locale) string {
	if m, ok := inactiveMarkers[l]; ok {
		return m
	}
	return inactiveMarkers[Russian]
}

// Formatter renders day sets numbered according to Base.
type Formatter struct {
	Base   Base
	Locale Locale
}

// Format joins the days Monday-first, e.g. "Пн, Ср, Пт".
// Duplicates are dropped.
func (f Formatter) Format(days []int) string {
	canon := Normalize(f.Base.FromWire(days))
	parts := make([]string, 0, len(canon))
	for _, d := range canon {
		parts = append(parts, Name(f.Locale, d))
	}
	return strings.Join(parts, ", ")
}

// Normalize sorts canonical days and removes duplicates.
func Normalize(days []int) []int {
	if len(days) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Valid reports whether every canonical day is within 0..6.
func Valid(days []int) bool {
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}

var aliases = map[string][]int{
	"all":      {0, 1, 2, 3, 4, 5, 6},
	"daily":    {0, 1, 2, 3, 4, 5, 6},
	"weekdays": {0, 1, 2, 3, 4},
	"weekend":  {5, 6},
}

var nameIndex = func() map[string]int {
	idx := map[string]int{
		"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
		"friday": 4, "saturday": 5, "sunday": 6,
	}
	for _, names := range shortNames {
		for i, n := range names {
			idx[strings.ToLower(n)] = i
		}
	}
	return idx
}()

// Parse reads a comma separated day list such as "mon,wed,fri", "пн,ср",
// "weekdays" or numbers in the given base ("0,2,4"). It returns canonical,
// sorted days.
func Parse(s string, b Base) ([]int, error) {
	var days []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if set, ok := aliases[tok]; ok {
			days = append(days, set...)
			continue
		}
		if d, ok := nameIndex[tok]; ok {
			days = append(days, d)
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("unknown day %q", tok)
		}
		d := n - int(b)
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("day %d out of range for base %d", n, b)
		}
		days = append(days, d)
	}
	return Normalize(days), nil
}
