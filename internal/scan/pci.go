package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fvbommel/sortorder"
	"github.com/jaypipes/pcidb"

	"github.com/pvetools/pve-attach/internal/iommu"
	"github.com/pvetools/pve-attach/internal/logger"
)

var sysBusPci = "/sys/bus/pci/devices"

// PCI enumerates the host's PCI devices that are candidates for passthrough.
//
// The IOMMU group of every device is read from sysfs while the device is
// being discovered and stored on the returned entry. Everything downstream
// works from that captured value; nothing re-resolves the group later.
func PCI() ([]iommu.Device, error) {
	entries, err := os.ReadDir(sysBusPci)
	if err != nil {
		return nil, fmt.Errorf("Failed to list %q: %w", sysBusPci, err)
	}

	// Sort the addresses for a stable menu.
	addresses := make([]string, 0, len(entries))
	for _, entry := range entries {
		addresses = append(addresses, entry.Name())
	}

	sort.Slice(addresses, func(i, j int) bool {
		return sortorder.NaturalLess(addresses[i], addresses[j])
	})

	// Load the PCI database for friendly names (best effort).
	pciDB, err := pcidb.New()
	if err != nil {
		logger.Debug("Failed to load PCI database", logger.Ctx{"err": err})
		pciDB = nil
	}

	devices := []iommu.Device{}
	seen := 0
	for _, address := range addresses {
		devicePath := filepath.Join(sysBusPci, address)

		// Skip PCI bridges, they never get handed to a guest.
		class, err := readString(filepath.Join(devicePath, "class"))
		if err == nil && strings.HasPrefix(class, "0x06") {
			continue
		}

		seen++

		// Capture the IOMMU group now, from the device's own symlink.
		groupPath, err := os.Readlink(filepath.Join(devicePath, "iommu_group"))
		if err != nil {
			logger.Debug("Device has no IOMMU group", logger.Ctx{"address": address})
			continue
		}

		group := filepath.Base(groupPath)

		devices = append(devices, iommu.Device{
			Index:       len(devices) + 1,
			Address:     address,
			Description: pciDescription(pciDB, devicePath),
			Group:       group,
		})
	}

	if len(devices) == 0 && seen > 0 {
		return nil, errors.New("No PCI device belongs to an IOMMU group, is the IOMMU enabled on this host?")
	}

	return devices, nil
}

// pciDescription builds a human readable description for the device,
// falling back to the raw vendor/device IDs when the database has no entry.
func pciDescription(pciDB *pcidb.PCIDB, devicePath string) string {
	vendorID, err := readString(filepath.Join(devicePath, "vendor"))
	if err != nil {
		return ""
	}

	productID, err := readString(filepath.Join(devicePath, "device"))
	if err != nil {
		return ""
	}

	vendorID = strings.TrimPrefix(vendorID, "0x")
	productID = strings.TrimPrefix(productID, "0x")

	vendorName := ""
	productName := ""

	if pciDB != nil {
		vendor, ok := pciDB.Vendors[vendorID]
		if ok {
			vendorName = vendor.Name

			for _, product := range vendor.Products {
				if product.ID == productID {
					productName = product.Name
					break
				}
			}
		}
	}

	if vendorName == "" {
		return fmt.Sprintf("%s:%s", vendorID, productID)
	}

	if productName == "" {
		return fmt.Sprintf("%s [%s:%s]", vendorName, vendorID, productID)
	}

	return fmt.Sprintf("%s %s", vendorName, productName)
}
