package testutil

import (
	"github.com/go-rod/rod/lib/devices"
	"github.com/samber/lo"
)

// Profile is a device the scenario runs under.
type Profile struct {
	Name   string
	Device devices.Device
}

// Touch reports whether the device taps instead of clicking.
func (p Profile) Touch() bool {
	return lo.Contains(p.Device.Capabilities, "touch")
}

// Profiles returns the devices the scenario covers: a phone that taps and a
// laptop that clicks.
func Profiles() []Profile {
	return []Profile{
		{Name: "iPhone 6", Device: devices.IPhone6or7or8},
		{Name: "desktop", Device: devices.LaptopWithMDPIScreen},
	}
}

// ProfileByName looks a profile up by its name.
func ProfileByName(name string) (Profile, bool) {
	return lo.Find(Profiles(), func(p Profile) bool { return p.Name == name })
}
