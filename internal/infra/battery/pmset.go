package battery

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/battalert/battalert/internal/domain"
)

// pmsetLine matches "-InternalBattery-0 (id=1234)	85%; charging; 0:45 remaining".
var pmsetLine = regexp.MustCompile(`InternalBattery.*?(\d+)%;\s*([^;]+)`)

// parsePMSet interprets the output of `pmset -g batt`.
func parsePMSet(out string) (domain.Reading, error) {
	m := pmsetLine.FindStringSubmatch(out)
	if m == nil {
		return domain.Reading{}, domain.ErrNoBattery
	}
	pct, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.Reading{}, fmt.Errorf("parse pmset percent %q: %w", m[1], err)
	}

	plugged := strings.Contains(out, "'AC Power'")
	if !strings.Contains(out, "drawing from") {
		// Older pmset omits the source line; infer from the state column.
		state := strings.TrimSpace(m[2])
		plugged = state == "charging" || state == "charged" || state == "finishing charge" || state == "AC attached"
	}
	return domain.Reading{Percent: pct, PluggedIn: plugged}, nil
}
