package source

import (
	"regexp"
	"time"
)

// The export lands under a handful of naming conventions; the date in
// the name decides which file is the latest.
var snapshotNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`재고raw데이터[_\s]*(\d{8})\.csv$`),
	regexp.MustCompile(`재고raw데이터[_\s]*(\d{4})-(\d{2})-(\d{2})\.csv$`),
	regexp.MustCompile(`^(\d{8})\.csv$`),
}

// SnapshotDate extracts the export date from a snapshot file name.
func SnapshotDate(name string) (time.Time, bool) {
	for _, re := range snapshotNamePatterns {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		digits := m[1]
		if len(m) == 4 {
			digits = m[1] + m[2] + m[3]
		}
		t, err := time.Parse("20060102", digits)
		if err != nil {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}
