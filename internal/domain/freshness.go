package domain

import "strings"

// BandScheme selects how shelf-life percentages map to freshness bands.
// The two schemes come from the two export granularities and are never
// blended: one scheme is canonical per deployment.
type BandScheme string

const (
	// BandSchemeCoarse is the canonical scheme (20% steps).
	BandSchemeCoarse BandScheme = "coarse"
	// BandSchemeFine is the alternate 90/80/70 threshold scheme.
	BandSchemeFine BandScheme = "fine"
)

type band struct {
	threshold float64
	label     string
}

// Bands are ordered highest threshold first; lower bounds are inclusive
// and the first match wins, so a percent exactly on a boundary resolves
// to the higher band.
var (
	coarseBands = []band{
		{80, "80% 이상"},
		{60, "60~80%"},
		{40, "40~60%"},
		{20, "20~40%"},
	}
	coarseFloor = "20% 미만"

	fineBands = []band{
		{90, "90% 이상"},
		{80, "80% 이상"},
		{70, "70% 이상"},
	}
	fineFloor = "70% 미만"
)

// ParseBandScheme resolves a configured scheme name, defaulting to coarse.
func ParseBandScheme(s string) BandScheme {
	if strings.EqualFold(strings.TrimSpace(s), string(BandSchemeFine)) {
		return BandSchemeFine
	}
	return BandSchemeCoarse
}

// Classify maps a shelf-life percent to its band label.
func (s BandScheme) Classify(percent float64) string {
	bands, floor := s.bands()
	for _, b := range bands {
		if percent >= b.threshold {
			return b.label
		}
	}
	return floor
}

// Labels returns the ordered band labels, freshest first.
func (s BandScheme) Labels() []string {
	bands, floor := s.bands()
	labels := make([]string, 0, len(bands)+1)
	for _, b := range bands {
		labels = append(labels, b.label)
	}
	return append(labels, floor)
}

func (s BandScheme) bands() ([]band, string) {
	if s == BandSchemeFine {
		return fineBands, fineFloor
	}
	return coarseBands, coarseFloor
}
