// Package iommu resolves IOMMU group membership for PCI passthrough.
//
// Group membership is captured once, while the devices are being enumerated,
// and only ever replayed afterwards. Re-deriving the group from a device
// address through a second sysfs lookup is deliberately not supported: with
// overlapping address fragments that path can silently resolve to the wrong
// group.
package iommu

import (
	"errors"
)

// ErrNotFound is returned when a selection doesn't match any enumerated device.
var ErrNotFound = errors.New("Device not found in enumeration")

// Device is one enumerated PCI device candidate.
type Device struct {
	// Index is the display index presented to the user.
	Index int

	// Address is the full PCI address (e.g. "0000:01:00.0").
	Address string

	// Description is a human readable vendor/device summary.
	Description string

	// Group is the IOMMU group recorded when the device was discovered.
	Group string
}

// ResolveGroup returns the IOMMU group of the chosen device along with the
// addresses of every enumerated device sharing that group, in enumeration
// order and including the chosen device itself.
func ResolveGroup(devices []Device, chosen int) (string, []string, error) {
	var group string

	found := false
	for _, dev := range devices {
		if dev.Index == chosen {
			group = dev.Group
			found = true
			break
		}
	}

	if !found {
		return "", nil, ErrNotFound
	}

	members := []string{}
	for _, dev := range devices {
		if dev.Group == group {
			members = append(members, dev.Address)
		}
	}

	return group, members, nil
}
