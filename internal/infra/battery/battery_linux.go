//go:build linux

package battery

import "github.com/battalert/battalert/internal/domain"

const sysfsRoot = "/sys/class/power_supply"

// readBattery reads charge and AC state on Linux via sysfs.
func readBattery() (domain.Reading, error) {
	return readSysfs(sysfsRoot)
}
