//go:build windows

package battery

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"

	"github.com/battalert/battalert/internal/domain"
)

// readBattery queries WMI Win32_Battery. Desktops return no rows.
func readBattery() (domain.Reading, error) {
	var dst []win32Battery
	query := "SELECT EstimatedChargeRemaining, BatteryStatus FROM Win32_Battery"
	if err := wmi.Query(query, &dst); err != nil {
		return domain.Reading{}, fmt.Errorf("WMI query failed: %w", err)
	}
	if len(dst) == 0 {
		return domain.Reading{}, domain.ErrNoBattery
	}

	b := dst[0]
	return domain.Reading{
		Percent:   int(b.EstimatedChargeRemaining),
		PluggedIn: win32Plugged(b.BatteryStatus),
	}, nil
}
