package scan

import (
	"os"
	"strconv"
	"strings"
)

// readString reads a sysfs attribute and trims the trailing newline.
func readString(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(content)), nil
}

// readUint reads a sysfs attribute holding a decimal integer.
func readUint(path string) (uint64, error) {
	content, err := readString(path)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseUint(content, 10, 64)
	if err != nil {
		return 0, err
	}

	return value, nil
}
