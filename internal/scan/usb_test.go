package scan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLsusb(t *testing.T) {
	output := `Bus 002 Device 001: ID 1d6b:0003 Linux Foundation 3.0 root hub
Bus 001 Device 004: ID 046d:c52b Logitech, Inc. Unifying Receiver
Bus 001 Device 003: ID 0781:5583 SanDisk Corp. Ultra Fit
Bus 001 Device 001: ID 1d6b:0002 Linux Foundation 2.0 root hub
`

	devices := parseLsusb(output)
	require.Len(t, devices, 2)

	require.Equal(t, 1, devices[0].Index)
	require.Equal(t, "046d:c52b", devices[0].ID)
	require.Equal(t, "001", devices[0].Bus)
	require.Equal(t, "004", devices[0].Device)
	require.Equal(t, "Logitech, Inc. Unifying Receiver", devices[0].Description)

	require.Equal(t, 2, devices[1].Index)
	require.Equal(t, "0781:5583", devices[1].ID)
}

func TestParseLsusbMalformed(t *testing.T) {
	output := `not a device line
Bus abc Device 001: ID 1234:5678 Broken
Bus 001 Device 002: ID 1234:5678
`

	devices := parseLsusb(output)
	require.Len(t, devices, 1)
	require.Equal(t, "1234:5678", devices[0].ID)
	require.Equal(t, "", devices[0].Description)
}

func TestParseLsusbEmpty(t *testing.T) {
	require.Empty(t, parseLsusb(""))
}
