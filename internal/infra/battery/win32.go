package battery

// win32Battery mirrors the WMI Win32_Battery fields battalert reads.
type win32Battery struct {
	EstimatedChargeRemaining uint16
	BatteryStatus            uint16
}

// win32Plugged maps Win32_Battery.BatteryStatus to "on AC power".
// 2 = AC, 3 = fully charged, 6..9 = charging variants, 11 = partially charged.
func win32Plugged(status uint16) bool {
	switch status {
	case 2, 3, 6, 7, 8, 9, 11:
		return true
	default:
		return false
	}
}
