package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/pvetools/pve-attach/internal/cli"
	"github.com/pvetools/pve-attach/internal/iommu"
	"github.com/pvetools/pve-attach/internal/scan"
	"github.com/pvetools/pve-attach/internal/vmconfig"
)

// PCIAttachment handles passing a PCIe device through to a VM.
type PCIAttachment struct {
	*Attachment

	device  iommu.Device
	group   string
	members []string

	flagPCIE         bool
	flagAllFunctions bool
}

// gatherInfo asks the user which PCI device to attach and resolves
// its IOMMU group.
func (a *PCIAttachment) gatherInfo() error {
	devices, err := scan.PCI()
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		return errors.New("No PCI devices found on this host")
	}

	data := [][]string{}
	for _, dev := range devices {
		data = append(data, []string{strconv.Itoa(dev.Index), dev.Address, dev.Description, dev.Group})
	}

	fmt.Println("")

	err = cli.RenderTable(os.Stdout, a.flagFormat, []string{"#", "ADDRESS", "DESCRIPTION", "IOMMU GROUP"}, data, devices)
	if err != nil {
		return err
	}

	chosen, err := a.global.asker.AskInt("Device to attach: ", 1, int64(len(devices)), "", nil)
	if err != nil {
		return err
	}

	// Replay the group captured during enumeration.
	a.group, a.members, err = iommu.ResolveGroup(devices, int(chosen))
	if err != nil {
		return err
	}

	for _, dev := range devices {
		if dev.Index == int(chosen) {
			a.device = dev
			break
		}
	}

	if len(a.members) > 1 {
		fmt.Printf("\nIOMMU group %s contains %d devices, they are all handed to the VM together:\n", a.group, len(a.members))
		for _, member := range a.members {
			fmt.Printf("  %s\n", member)
		}

		fmt.Println("")

		ok, err := a.global.asker.AskBool("Continue anyway? [default=yes]: ", "yes")
		if err != nil {
			return err
		}

		if !ok {
			return errors.New("Attachment aborted by user")
		}
	}

	a.flagPCIE, err = a.global.asker.AskBool("Mark the device as PCIe (requires the q35 machine type)? [default=no]: ", "no")
	if err != nil {
		return err
	}

	// Offer all-functions passthrough for multi-function devices.
	if a.functionSiblings(devices) > 1 {
		a.flagAllFunctions, err = a.global.asker.AskBool("Pass through all functions of this device? [default=yes]: ", "yes")
		if err != nil {
			return err
		}
	}

	a.ctrl = vmconfig.ControllerHostPCI
	a.value = a.directive()

	err = a.askVM()
	if err != nil {
		return err
	}

	return a.computeSlot()
}

// functionSiblings counts the enumerated functions sharing the chosen
// device's bus and slot.
func (a *PCIAttachment) functionSiblings(devices []iommu.Device) int {
	prefix, _, ok := strings.Cut(a.device.Address, ".")
	if !ok {
		return 1
	}

	count := 0
	for _, dev := range devices {
		if strings.HasPrefix(dev.Address, prefix+".") {
			count++
		}
	}

	return count
}

// directive builds the hostpci directive value.
func (a *PCIAttachment) directive() string {
	address := a.device.Address
	if a.flagAllFunctions {
		// Dropping the function suffix makes Proxmox pick up every
		// function of the device.
		address, _, _ = strings.Cut(address, ".")
	}

	if a.flagPCIE {
		address += ",pcie=1"
	}

	return address
}

// renderObject renders the planned attachment.
func (a *PCIAttachment) renderObject() error {
	data := struct {
		VMID         int      `yaml:"VMID"`
		Slot         string   `yaml:"Slot"`
		Address      string   `yaml:"Address"`
		Description  string   `yaml:"Description,omitempty"`
		Group        string   `yaml:"IOMMU group"`
		GroupMembers []string `yaml:"Group members,omitempty"`
		Directive    string   `yaml:"Directive"`
	}{
		a.vmid,
		a.key(),
		a.device.Address,
		a.device.Description,
		a.group,
		a.members,
		a.value,
	}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", string(out))

	return nil
}
