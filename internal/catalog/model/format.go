package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GenerateSlug lowercases language and replaces every character outside
// [a-z0-9] with '-', one dash per character ("C++" -> "c--").
func GenerateSlug(language string) string {
	lower := strings.ToLower(language)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// FormatStarsDisplay renders a star count for display: 925, 2.9K, 1.3M.
func FormatStarsDisplay(stars int) string {
	switch {
	case stars >= 1_000_000:
		return fmt.Sprintf("%.1fM", tenths(stars, 100_000))
	case stars >= 1_000:
		return fmt.Sprintf("%.1fK", tenths(stars, 100))
	default:
		return strconv.Itoa(stars)
	}
}

// tenths returns stars/(unit*10) rounded half away from zero to one decimal.
func tenths(stars, unit int) float64 {
	return math.Round(float64(stars)/float64(unit)) / 10
}
