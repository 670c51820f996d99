// Package battery samples the OS battery API: charge percentage and whether
// AC power is connected. Platform readers live behind build tags; machines
// without a battery report domain.ErrNoBattery.
package battery

import (
	"github.com/battalert/battalert/internal/domain"
)

// Source reads battery state from the running OS.
type Source struct {
	read func() (domain.Reading, error)
}

// NewSource creates a battery source for the current platform.
func NewSource() *Source {
	return &Source{read: readBattery}
}

// Read returns the current charge and plug state.
func (s *Source) Read() (domain.Reading, error) {
	r, err := s.read()
	if err != nil {
		return domain.Reading{}, err
	}
	r.Percent = clampPercent(r.Percent)
	return r, nil
}

// IsPresent returns true if the machine has a battery (laptop).
func (s *Source) IsPresent() bool {
	_, err := s.read()
	return err == nil
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
