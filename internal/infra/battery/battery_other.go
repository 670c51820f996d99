//go:build !linux && !darwin && !windows

package battery

import "github.com/battalert/battalert/internal/domain"

func readBattery() (domain.Reading, error) {
	return domain.Reading{}, domain.ErrBatteryUnsupported
}
