package domain

// DeviceClass is the device category derived from viewport width.
type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceTablet  DeviceClass = "tablet"
	DeviceDesktop DeviceClass = "desktop"
)

// Breakpoints between device classes, in CSS pixels.
const (
	tabletMinWidth  = 768
	desktopMinWidth = 1024
)

// ClassifyDevice maps a viewport width to a device category.
func ClassifyDevice(width int) DeviceClass {
	switch {
	case width < tabletMinWidth:
		return DeviceMobile
	case width < desktopMinWidth:
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}
