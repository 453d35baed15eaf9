package iommu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveGroup(t *testing.T) {
	devices := []Device{
		{Index: 1, Address: "0000:01:00.0", Group: "7"},
		{Index: 2, Address: "0000:01:00.1", Group: "7"},
		{Index: 3, Address: "0000:02:00.0", Group: "9"},
	}

	group, members, err := ResolveGroup(devices, 2)
	require.NoError(t, err)
	require.Equal(t, "7", group)
	require.Equal(t, []string{"0000:01:00.0", "0000:01:00.1"}, members)

	group, members, err = ResolveGroup(devices, 3)
	require.NoError(t, err)
	require.Equal(t, "9", group)
	require.Equal(t, []string{"0000:02:00.0"}, members)
}

func TestResolveGroupNotFound(t *testing.T) {
	devices := []Device{
		{Index: 1, Address: "0000:01:00.0", Group: "7"},
	}

	_, _, err := ResolveGroup(devices, 4)
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = ResolveGroup(nil, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveGroupPreservesOrder(t *testing.T) {
	// Membership is replayed in enumeration order, chosen entry included.
	devices := []Device{
		{Index: 1, Address: "0000:03:00.2", Group: "12"},
		{Index: 2, Address: "0000:02:00.0", Group: "9"},
		{Index: 3, Address: "0000:03:00.0", Group: "12"},
		{Index: 4, Address: "0000:03:00.1", Group: "12"},
	}

	_, members, err := ResolveGroup(devices, 4)
	require.NoError(t, err)
	require.Equal(t, []string{"0000:03:00.2", "0000:03:00.0", "0000:03:00.1"}, members)
}
