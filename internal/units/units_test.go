package units

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetByteSizeStringIEC(t *testing.T) {
	require.Equal(t, "0B", GetByteSizeStringIEC(0, 2))
	require.Equal(t, "1023B", GetByteSizeStringIEC(1023, 2))
	require.Equal(t, "1.00KiB", GetByteSizeStringIEC(1024, 2))
	require.Equal(t, "1.50MiB", GetByteSizeStringIEC(1572864, 2))
	require.Equal(t, "931.51GiB", GetByteSizeStringIEC(1000204886016, 2))
	require.Equal(t, "2.0TiB", GetByteSizeStringIEC(2199023255552, 1))
}
