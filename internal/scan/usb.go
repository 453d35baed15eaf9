package scan

import (
	"context"
	"regexp"
	"strings"

	"github.com/pvetools/pve-attach/internal/subprocess"
)

var lsusbLine = regexp.MustCompile(`^Bus (\d{3}) Device (\d{3}): ID ([0-9a-f]{4}:[0-9a-f]{4})\s*(.*)$`)

// USBDevice is one USB device present on the host.
type USBDevice struct {
	// Index is the display index presented to the user.
	Index int

	// ID is the vendor:product identifier (e.g. "046d:c52b").
	ID string

	// Bus and Device are the bus address of this specific plug-in.
	Bus    string
	Device string

	// Description is the human readable device summary.
	Description string
}

// USBDevices enumerates the host's USB devices through lsusb.
func USBDevices(ctx context.Context) ([]USBDevice, error) {
	output, err := subprocess.RunCommandContext(ctx, "lsusb")
	if err != nil {
		return nil, err
	}

	return parseLsusb(output), nil
}

// parseLsusb turns lsusb output lines into USB devices, skipping root hubs.
func parseLsusb(output string) []USBDevice {
	devices := []USBDevice{}

	for _, line := range strings.Split(output, "\n") {
		fields := lsusbLine.FindStringSubmatch(strings.TrimSpace(line))
		if fields == nil {
			continue
		}

		if strings.Contains(strings.ToLower(fields[4]), "root hub") {
			continue
		}

		devices = append(devices, USBDevice{
			Index:       len(devices) + 1,
			Bus:         fields[1],
			Device:      fields[2],
			ID:          fields[3],
			Description: fields[4],
		})
	}

	return devices
}
