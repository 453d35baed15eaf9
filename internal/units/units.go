// Package units converts byte counts to human readable strings.
package units

import (
	"fmt"
)

// GetByteSizeStringIEC takes a number of bytes and returns a string
// representation with two-power (IEC) suffixes.
func GetByteSizeStringIEC(input int64, precision uint) string {
	if input < 1024 {
		return fmt.Sprintf("%dB", input)
	}

	value := float64(input)

	for _, unit := range []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"} {
		value = value / 1024
		if value < 1024 {
			return fmt.Sprintf("%.*f%s", precision, value, unit)
		}
	}

	return fmt.Sprintf("%.*f%s", precision, value, "EiB")
}
