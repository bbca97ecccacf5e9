package ledger

// StressBand buckets a stress value for display.
type StressBand string

const (
	BandCalm        StressBand = "calm"
	BandTense       StressBand = "tense"
	BandOverwhelmed StressBand = "overwhelmed"
)

// Band classifies stress: below 0.35 calm, below 0.70 tense, else overwhelmed.
func Band(stress float64) StressBand {
	switch {
	case stress >= 0.70:
		return BandOverwhelmed
	case stress >= 0.35:
		return BandTense
	default:
		return BandCalm
	}
}
