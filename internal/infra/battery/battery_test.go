package battery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/battalert/battalert/internal/domain"
)

// writeSupply creates root/name with the given attribute files.
func writeSupply(t *testing.T, root, name string, attrs map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for k, v := range attrs {
		if err := os.WriteFile(filepath.Join(dir, k), []byte(v+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// ─── sysfs ──────────────────────────────────────────────────────────────────

func TestReadSysfs_BatteryWithAdapter(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "87", "status": "Charging"})
	writeSupply(t, root, "AC", map[string]string{"type": "Mains", "online": "1"})

	got, err := readSysfs(root)
	if err != nil {
		t.Fatalf("readSysfs() error: %v", err)
	}
	want := domain.Reading{Percent: 87, PluggedIn: true}
	if got != want {
		t.Errorf("readSysfs() = %+v, want %+v", got, want)
	}
}

func TestReadSysfs_AdapterOffline(t *testing.T) {
	root := t.TempDir()
	// Status lies ("Full") but the adapter is authoritative.
	writeSupply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "100", "status": "Full"})
	writeSupply(t, root, "ADP1", map[string]string{"type": "Mains", "online": "0"})

	got, err := readSysfs(root)
	if err != nil {
		t.Fatalf("readSysfs() error: %v", err)
	}
	if got.PluggedIn {
		t.Error("PluggedIn should be false when the adapter is offline")
	}
}

func TestReadSysfs_StatusFallback(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"Charging", true},
		{"Full", true},
		{"Not charging", true},
		{"Discharging", false},
		{"Unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			root := t.TempDir()
			writeSupply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "50", "status": tt.status})

			got, err := readSysfs(root)
			if err != nil {
				t.Fatalf("readSysfs() error: %v", err)
			}
			if got.PluggedIn != tt.want {
				t.Errorf("PluggedIn = %v, want %v", got.PluggedIn, tt.want)
			}
		})
	}
}

func TestReadSysfs_AveragesSystemBatteries(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "80"})
	writeSupply(t, root, "BAT1", map[string]string{"type": "Battery", "capacity": "60"})
	writeSupply(t, root, "hidpp_battery_0", map[string]string{"type": "Battery", "scope": "Device", "capacity": "5"})

	got, err := readSysfs(root)
	if err != nil {
		t.Fatalf("readSysfs() error: %v", err)
	}
	if got.Percent != 70 {
		t.Errorf("Percent = %d, want 70", got.Percent)
	}
}

func TestReadSysfs_NoBattery(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "AC", map[string]string{"type": "Mains", "online": "1"})

	if _, err := readSysfs(root); !errors.Is(err, domain.ErrNoBattery) {
		t.Errorf("readSysfs() = %v, want ErrNoBattery", err)
	}
	if _, err := readSysfs(filepath.Join(root, "missing")); !errors.Is(err, domain.ErrNoBattery) {
		t.Errorf("readSysfs(missing) = %v, want ErrNoBattery", err)
	}
}

// ─── pmset ──────────────────────────────────────────────────────────────────

func TestParsePMSet(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    domain.Reading
		wantErr error
	}{
		{
			name: "charging on AC",
			out:  "Now drawing from 'AC Power'\n -InternalBattery-0 (id=4653155)\t93%; charging; 0:20 remaining present: true\n",
			want: domain.Reading{Percent: 93, PluggedIn: true},
		},
		{
			name: "charged",
			out:  "Now drawing from 'AC Power'\n -InternalBattery-0 (id=4653155)\t100%; charged; 0:00 remaining present: true\n",
			want: domain.Reading{Percent: 100, PluggedIn: true},
		},
		{
			name: "on battery",
			out:  "Now drawing from 'Battery Power'\n -InternalBattery-0 (id=4653155)\t64%; discharging; 5:12 remaining present: true\n",
			want: domain.Reading{Percent: 64, PluggedIn: false},
		},
		{
			name: "no source line",
			out:  " -InternalBattery-0\t88%; charging; (no estimate)\n",
			want: domain.Reading{Percent: 88, PluggedIn: true},
		},
		{
			name:    "desktop",
			out:     "Now drawing from 'AC Power'\n",
			wantErr: domain.ErrNoBattery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePMSet(tt.out)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parsePMSet() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePMSet() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parsePMSet() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ─── WMI ────────────────────────────────────────────────────────────────────

func TestWin32Plugged(t *testing.T) {
	plugged := map[uint16]bool{1: false, 2: true, 3: true, 4: false, 5: false, 6: true, 9: true, 10: false, 11: true}
	for status, want := range plugged {
		if got := win32Plugged(status); got != want {
			t.Errorf("win32Plugged(%d) = %v, want %v", status, got, want)
		}
	}
}

// ─── Source ─────────────────────────────────────────────────────────────────

func TestSource_ClampsPercent(t *testing.T) {
	s := &Source{read: func() (domain.Reading, error) {
		return domain.Reading{Percent: 104, PluggedIn: true}, nil
	}}
	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got.Percent != 100 {
		t.Errorf("Percent = %d, want 100", got.Percent)
	}
	if !s.IsPresent() {
		t.Error("IsPresent() should be true")
	}
}

func TestSource_PropagatesError(t *testing.T) {
	s := &Source{read: func() (domain.Reading, error) {
		return domain.Reading{}, domain.ErrNoBattery
	}}
	if _, err := s.Read(); !errors.Is(err, domain.ErrNoBattery) {
		t.Errorf("Read() = %v, want ErrNoBattery", err)
	}
	if s.IsPresent() {
		t.Error("IsPresent() should be false")
	}
}
