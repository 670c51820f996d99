package battery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/battalert/battalert/internal/domain"
)

// readSysfs reads the Linux power_supply class rooted at root
// (normally /sys/class/power_supply).
//
// System batteries are averaged; peripheral batteries (scope=Device) are
// ignored. Plug state comes from any online Mains/USB supply, falling back
// to the battery status when the machine exposes no AC adapter node.
func readSysfs(root string) (domain.Reading, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Reading{}, domain.ErrNoBattery
		}
		return domain.Reading{}, fmt.Errorf("read %s: %w", root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var (
		total, batteries int
		sawAdapter       bool
		adapterOnline    bool
		statusPlugged    bool
	)
	for _, name := range names {
		dir := filepath.Join(root, name)
		switch readAttr(dir, "type") {
		case "Battery":
			if readAttr(dir, "scope") == "Device" {
				continue
			}
			pct, err := strconv.Atoi(readAttr(dir, "capacity"))
			if err != nil {
				continue
			}
			total += pct
			batteries++
			switch readAttr(dir, "status") {
			case "Charging", "Full", "Not charging":
				statusPlugged = true
			}
		case "Mains", "USB", "USB_C", "USB_PD":
			sawAdapter = true
			if readAttr(dir, "online") == "1" {
				adapterOnline = true
			}
		}
	}

	if batteries == 0 {
		return domain.Reading{}, domain.ErrNoBattery
	}

	plugged := adapterOnline
	if !sawAdapter {
		plugged = statusPlugged
	}
	return domain.Reading{
		Percent:   total / batteries,
		PluggedIn: plugged,
	}, nil
}

// readAttr returns the trimmed contents of dir/name, or "" on error.
func readAttr(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
