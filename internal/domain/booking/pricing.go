package booking

import (
	"time"

	"boxrent/internal/domain/box"
)

// AdditionalDays returns the billable days between the current end and
// the requested new end, rounding partial days up. Zero or negative
// spans return 0.
func AdditionalDays(currentEnd, newEnd time.Time) int {
	if !newEnd.After(currentEnd) {
		return 0
	}
	d := newEnd.Sub(currentEnd)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

type Pricer interface {
	ExtensionCents(bx *box.Box, days int) int64
}

const defaultMultiplierBps = 10000

// StandardPricer prices extensions as days x the box daily rate, scaled
// by a per-model multiplier in basis points.
type StandardPricer struct {
	multiplierBps map[box.Model]int64
}

func NewStandardPricer() *StandardPricer {
	return &StandardPricer{
		multiplierBps: map[box.Model]int64{
			"classic-320": 10000,
			"alpine-460":  12500,
			"cargo-600":   15000,
		},
	}
}

func (p *StandardPricer) ExtensionCents(bx *box.Box, days int) int64 {
	if days <= 0 {
		return 0
	}
	bps, ok := p.multiplierBps[bx.Model()]
	if !ok {
		bps = defaultMultiplierBps
	}
	return int64(days) * bx.DailyRateCents() * bps / 10000
}
