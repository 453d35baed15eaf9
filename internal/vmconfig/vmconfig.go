// Package vmconfig computes attachment slots from a VM's raw configuration text.
package vmconfig

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ControllerType identifies a family of virtual attachment points on a VM.
type ControllerType int

const (
	// ControllerSCSI is the SCSI disk controller family.
	ControllerSCSI ControllerType = iota

	// ControllerSATA is the SATA disk controller family.
	ControllerSATA

	// ControllerVirtIO is the VirtIO block controller family.
	ControllerVirtIO

	// ControllerIDE is the IDE disk controller family.
	ControllerIDE

	// ControllerHostPCI is the host PCI passthrough family.
	ControllerHostPCI

	// ControllerUSB is the host USB passthrough family.
	ControllerUSB
)

// Prefix returns the configuration tag for the controller family.
func (c ControllerType) Prefix() string {
	switch c {
	case ControllerSCSI:
		return "scsi"
	case ControllerSATA:
		return "sata"
	case ControllerVirtIO:
		return "virtio"
	case ControllerIDE:
		return "ide"
	case ControllerHostPCI:
		return "hostpci"
	case ControllerUSB:
		return "usb"
	}

	return ""
}

// String implements fmt.Stringer.
func (c ControllerType) String() string {
	return c.Prefix()
}

// ParseControllerType maps a controller tag back to its ControllerType.
func ParseControllerType(name string) (ControllerType, error) {
	for _, c := range []ControllerType{ControllerSCSI, ControllerSATA, ControllerVirtIO, ControllerIDE, ControllerHostPCI, ControllerUSB} {
		if c.Prefix() == name {
			return c, nil
		}
	}

	return ControllerType(-1), fmt.Errorf("Unknown controller type %q", name)
}

// UsedIndexes returns the sorted slot indexes already present in the
// configuration text for the given controller family.
//
// A line counts when it starts with the family tag immediately followed by
// digits and a ":" separator. Tag matching is exact, so a "scsi10" directive
// never counts towards a shorter tag that happens to share its spelling.
// Lines not matching that shape are ignored.
func UsedIndexes(configText string, ctrl ControllerType) []int {
	indexes := []int{}

	for _, line := range strings.Split(configText, "\n") {
		idx, ok := parseDirective(line, ctrl)
		if !ok {
			continue
		}

		indexes = append(indexes, idx)
	}

	sort.Ints(indexes)

	return indexes
}

// NextIndex returns the lowest slot index above every index already used by
// the given controller family, or 0 when the family has no attachments yet.
// The configuration text is only ever read; calling this repeatedly with the
// same text gives the same answer.
func NextIndex(configText string, ctrl ControllerType) int {
	next := 0

	for _, idx := range UsedIndexes(configText, ctrl) {
		if idx >= next {
			next = idx + 1
		}
	}

	return next
}

// parseDirective extracts the slot index from a single configuration line,
// returning false when the line doesn't belong to the controller family.
func parseDirective(line string, ctrl ControllerType) (int, bool) {
	// Some captured hostpci directives carry the CLI flag spelling with one
	// or two leading dashes instead of the bare tag. Accept both for that
	// family only; the quirk has not been seen on any other directive type.
	if ctrl == ControllerHostPCI {
		for i := 0; i < 2; i++ {
			trimmed, ok := strings.CutPrefix(line, "-")
			if !ok {
				break
			}

			line = trimmed
		}
	}

	// Split the line into its leading tag and the rest.
	tagEnd := 0
	for tagEnd < len(line) && line[tagEnd] >= 'a' && line[tagEnd] <= 'z' {
		tagEnd++
	}

	if line[:tagEnd] != ctrl.Prefix() {
		return 0, false
	}

	// The tag must be followed by at least one digit and a ":" separator.
	digitEnd := tagEnd
	for digitEnd < len(line) && line[digitEnd] >= '0' && line[digitEnd] <= '9' {
		digitEnd++
	}

	if digitEnd == tagEnd || digitEnd >= len(line) || line[digitEnd] != ':' {
		return 0, false
	}

	idx, err := strconv.Atoi(line[tagEnd:digitEnd])
	if err != nil {
		return 0, false
	}

	return idx, true
}
