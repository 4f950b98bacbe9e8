// internal/questionnaire/cibil.go
package questionnaire

// CibilBand describes where a score sits on the 300-900 gauge.
type CibilBand struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// BandForScore maps a CIBIL score to its band label and gauge position.
// Scores below 300 or above 900 are out of range; the gauge pins to the
// matching end.
func BandForScore(score int) CibilBand {
	pct := (float64(score-300) / 600) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	switch {
	case score < 300:
		return CibilBand{Label: "Invalid", Percent: 0}
	case score <= 580:
		return CibilBand{Label: "Very Poor", Percent: pct}
	case score <= 640:
		return CibilBand{Label: "Poor", Percent: pct}
	case score <= 720:
		return CibilBand{Label: "Fair", Percent: pct}
	case score <= 780:
		return CibilBand{Label: "Good", Percent: pct}
	case score <= 900:
		return CibilBand{Label: "Excellent", Percent: pct}
	default:
		return CibilBand{Label: "Invalid", Percent: 100}
	}
}
