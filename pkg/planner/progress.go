package planner

// Progress is the cosmetic solve indicator. It advances toward a ceiling
// with steps that shrink as it gets closer, so it never reaches completion
// on its own, and snaps to 100 only when the real response arrives. The
// value carries no information about actual solver progress.
type Progress struct {
	value   float64
	ceiling float64
}

// NewProgress creates an indicator at zero.
func NewProgress() *Progress {
	return &Progress{ceiling: 95.0}
}

// Tick advances the indicator by a tenth of the remaining distance to the
// ceiling and returns the new value.
func (p *Progress) Tick() float64 {
	p.value += (p.ceiling - p.value) * 0.1
	return p.value
}

// Value returns the current percentage.
func (p *Progress) Value() float64 { return p.value }

// Finish snaps the indicator to 100.
func (p *Progress) Finish() { p.value = 100.0 }

// Reset returns the indicator to zero.
func (p *Progress) Reset() { p.value = 0 }
