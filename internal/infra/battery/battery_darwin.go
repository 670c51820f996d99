//go:build darwin

package battery

import (
	"fmt"
	"os/exec"

	"github.com/battalert/battalert/internal/domain"
)

// readBattery reads charge and AC state on macOS via pmset.
func readBattery() (domain.Reading, error) {
	out, err := exec.Command("pmset", "-g", "batt").Output()
	if err != nil {
		return domain.Reading{}, fmt.Errorf("pmset: %w", err)
	}
	return parsePMSet(string(out))
}
