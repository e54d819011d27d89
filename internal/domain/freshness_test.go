package domain

import "testing"

func TestCoarseClassify(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{100, "80% 이상"},
		{80, "80% 이상"}, // boundary resolves to the higher band
		{79.9, "60~80%"},
		{60, "60~80%"},
		{40, "40~60%"},
		{20, "20~40%"},
		{19.99, "20% 미만"},
		{0, "20% 미만"},
	}

	for _, tt := range tests {
		if got := BandSchemeCoarse.Classify(tt.percent); got != tt.want {
			t.Errorf("coarse Classify(%v) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestFineClassify(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{95, "90% 이상"},
		{90, "90% 이상"},
		{80, "80% 이상"},
		{70, "70% 이상"},
		{69.5, "70% 미만"},
	}

	for _, tt := range tests {
		if got := BandSchemeFine.Classify(tt.percent); got != tt.want {
			t.Errorf("fine Classify(%v) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestParseBandScheme(t *testing.T) {
	if got := ParseBandScheme("fine"); got != BandSchemeFine {
		t.Errorf("ParseBandScheme(fine) = %q", got)
	}
	if got := ParseBandScheme("FINE "); got != BandSchemeFine {
		t.Errorf("ParseBandScheme(FINE ) = %q", got)
	}
	for _, s := range []string{"", "coarse", "unknown"} {
		if got := ParseBandScheme(s); got != BandSchemeCoarse {
			t.Errorf("ParseBandScheme(%q) = %q, want coarse", s, got)
		}
	}
}

func TestLabels(t *testing.T) {
	coarse := BandSchemeCoarse.Labels()
	if len(coarse) != 5 || coarse[0] != "80% 이상" || coarse[4] != "20% 미만" {
		t.Errorf("coarse labels = %v", coarse)
	}
	fine := BandSchemeFine.Labels()
	if len(fine) != 4 || fine[0] != "90% 이상" || fine[3] != "70% 미만" {
		t.Errorf("fine labels = %v", fine)
	}
}
