package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/fvbommel/sortorder"
	"golang.org/x/sys/unix"

	"github.com/pvetools/pve-attach/internal/logger"
	"github.com/pvetools/pve-attach/internal/units"
)

var devDiskByID = "/dev/disk/by-id"
var sysBlock = "/sys/block"

var partitionSuffix = regexp.MustCompile(`-part\d+$`)

// isBlockDevice is overridden by the tests, which have no real devices.
var isBlockDevice = func(path string) bool {
	var st unix.Stat_t

	err := unix.Stat(path, &st)
	if err != nil {
		return false
	}

	return st.Mode&unix.S_IFMT == unix.S_IFBLK
}

// Disk is one stable disk identifier on the host.
type Disk struct {
	// Index is the display index presented to the user.
	Index int

	// ID is the stable identifier (the by-id symlink name).
	ID string

	// Path is the full by-id path used in the attachment directive.
	Path string

	// Target is the device node the identifier resolves to.
	Target string

	// Size is the human readable disk size, empty when unknown.
	Size string
}

// Disks enumerates whole-disk identifiers under /dev/disk/by-id.
// Partition links are skipped; attaching a bare partition to a VM is
// not something this tool supports.
func Disks() ([]Disk, error) {
	entries, err := os.ReadDir(devDiskByID)
	if err != nil {
		return nil, fmt.Errorf("Failed to list %q: %w", devDiskByID, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	sort.Slice(names, func(i, j int) bool {
		return sortorder.NaturalLess(names[i], names[j])
	})

	disks := []Disk{}
	for _, name := range names {
		if partitionSuffix.MatchString(name) {
			continue
		}

		linkPath := filepath.Join(devDiskByID, name)

		linkTarget, err := os.Readlink(linkPath)
		if err != nil {
			continue
		}

		target := linkTarget
		if !filepath.IsAbs(target) {
			target = filepath.Join(devDiskByID, linkTarget)
		}

		// Make sure the link points at an actual block device.
		if !isBlockDevice(target) {
			logger.Debug("Skipping non-block entry", logger.Ctx{"name": name})
			continue
		}

		disks = append(disks, Disk{
			Index:  len(disks) + 1,
			ID:     name,
			Path:   linkPath,
			Target: target,
			Size:   diskSize(filepath.Base(target)),
		})
	}

	return disks, nil
}

// diskSize reads the device size from sysfs (in 512 byte sectors).
func diskSize(devName string) string {
	sectors, err := readUint(filepath.Join(sysBlock, devName, "size"))
	if err != nil {
		return ""
	}

	return units.GetByteSizeStringIEC(int64(sectors)*512, 2)
}
