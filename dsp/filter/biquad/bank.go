package biquad

import "fmt"

// Bank is a cascade of identical-role sections with a fixed capacity.
// Only the first Active() sections process audio; the rest keep their
// coefficients and state untouched until they are activated again.
type Bank struct {
	sections []Section
	active   int
}

// NewBank returns a bank with capacity sections, all active and set to Identity.
func NewBank(capacity int) (*Bank, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("biquad bank capacity must be > 0: %d", capacity)
	}

	b := &Bank{
		sections: make([]Section, capacity),
		active:   capacity,
	}
	for i := range b.sections {
		b.sections[i].Coefficients = Identity
	}

	return b, nil
}

// Capacity returns the number of sections the bank holds.
func (b *Bank) Capacity() int { return len(b.sections) }

// Active returns the number of sections that currently process audio.
func (b *Bank) Active() int { return b.active }

// SetActive sets the number of processing sections, clamped to [1, Capacity()].
func (b *Bank) SetActive(n int) {
	b.active = min(max(n, 1), len(b.sections))
}

// SetCoefficients assigns c to every active section. Inactive sections keep
// their previous coefficients.
func (b *Bank) SetCoefficients(c Coefficients) {
	for i := range b.active {
		b.sections[i].Coefficients = c
	}
}

// SetSection assigns coefficients to one section regardless of the active count.
func (b *Bank) SetSection(i int, c Coefficients) {
	if i >= 0 && i < len(b.sections) {
		b.sections[i].Coefficients = c
	}
}

// Section returns section i for inspection.
func (b *Bank) Section(i int) *Section {
	return &b.sections[i]
}

// ProcessSample runs x through the active sections.
func (b *Bank) ProcessSample(x float64) float64 {
	for i := range b.active {
		x = b.sections[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in place through the active sections.
func (b *Bank) ProcessBlock(buf []float64) {
	for i := range b.active {
		b.sections[i].ProcessBlock(buf)
	}
}

// Reset clears the state of every section, active or not.
func (b *Bank) Reset() {
	for i := range b.sections {
		b.sections[i].Reset()
	}
}
