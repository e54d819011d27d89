package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// BatchDate is a calendar date decoded from a lot/batch code. The export
// writes the code as day, month, year with the year in the last four
// characters, the month in the two before it and a 1- or 2-digit day in
// front (DMMYYYY or DDMMYYYY).
type BatchDate struct {
	Formatted     string // YYYY-MM-DD
	Year          int
	IsExpiryGuess bool
}

// The batch field is overloaded: some lots carry the production date,
// others the expiry date. Years from 2025 on are taken as expiry dates.
const expiryGuessYear = 2025

// DecodeBatchDate parses a batch code into a calendar date. The second
// return value is false when the code is empty, has an unexpected length
// or contains a non-numeric or out-of-range segment.
func DecodeBatchDate(code string) (BatchDate, bool) {
	s := strings.TrimSpace(code)
	if s == "" || s == "-" {
		return BatchDate{}, false
	}
	if len(s) < 7 || len(s) > 8 {
		return BatchDate{}, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return BatchDate{}, false
		}
	}

	day, _ := strconv.Atoi(s[:len(s)-6])
	month, _ := strconv.Atoi(s[len(s)-6 : len(s)-4])
	year, _ := strconv.Atoi(s[len(s)-4:])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return BatchDate{}, false
	}

	return BatchDate{
		Formatted:     fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Year:          year,
		IsExpiryGuess: year >= expiryGuessYear,
	}, true
}

// DisplayDate renders the batch codes merged into one aggregated row:
// the most recent decoded date, annotated with the count of additional
// distinct dates (e.g. "2024-11-20 외 2건"). Returns "-" when no code
// decodes.
func DisplayDate(codes []string) string {
	seen := make(map[string]struct{}, len(codes))
	dates := make([]BatchDate, 0, len(codes))
	for _, code := range codes {
		d, ok := DecodeBatchDate(code)
		if !ok {
			continue
		}
		if _, dup := seen[d.Formatted]; dup {
			continue
		}
		seen[d.Formatted] = struct{}{}
		dates = append(dates, d)
	}

	if len(dates) == 0 {
		return "-"
	}

	sort.Slice(dates, func(i, j int) bool {
		if dates[i].Year != dates[j].Year {
			return dates[i].Year > dates[j].Year
		}
		return dates[i].Formatted > dates[j].Formatted
	})

	if len(dates) == 1 {
		return dates[0].Formatted
	}
	return fmt.Sprintf("%s 외 %d건", dates[0].Formatted, len(dates)-1)
}
