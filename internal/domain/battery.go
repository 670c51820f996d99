package domain

import "fmt"

// Reading is one battery sample.
type Reading struct {
	Percent   int  `json:"percent"`
	PluggedIn bool `json:"plugged_in"`
}

// ChargingStatus returns the label shown next to the chart.
func (r Reading) ChargingStatus() string {
	if r.PluggedIn {
		return "Plugged In"
	}
	return "On Battery"
}

func (r Reading) String() string {
	return fmt.Sprintf("%d%% (%s)", r.Percent, r.ChargingStatus())
}

// AlertCondition reports whether a reading should trigger the full-charge alert.
func AlertCondition(r Reading, threshold int) bool {
	return r.PluggedIn && r.Percent >= threshold
}
