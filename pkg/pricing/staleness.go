package pricing

import "time"

// Staleness classifies a catalog's age relative to its valid_until
// timestamp (spec §4.5.3).
type Staleness int

const (
	Fresh Staleness = iota
	Warning
	Critical
)

func (s Staleness) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

const criticalGrace = 90 * 24 * time.Hour

// classifyStaleness compares now against validUntil per spec §4.5.3.
func classifyStaleness(now, validUntil time.Time) Staleness {
	if !now.After(validUntil) {
		return Fresh
	}
	if now.After(validUntil.Add(criticalGrace)) {
		return Critical
	}
	return Warning
}
