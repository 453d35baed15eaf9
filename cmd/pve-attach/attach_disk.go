package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/pvetools/pve-attach/internal/cli"
	"github.com/pvetools/pve-attach/internal/scan"
	"github.com/pvetools/pve-attach/internal/vmconfig"
)

// DiskAttachment handles passing a physical disk through to a VM.
type DiskAttachment struct {
	*Attachment

	disk scan.Disk
}

// gatherInfo asks the user which disk to attach and on which controller.
func (a *DiskAttachment) gatherInfo() error {
	disks, err := scan.Disks()
	if err != nil {
		return err
	}

	if len(disks) == 0 {
		return errors.New("No disks found on this host")
	}

	data := [][]string{}
	for _, disk := range disks {
		data = append(data, []string{strconv.Itoa(disk.Index), disk.ID, disk.Target, disk.Size})
	}

	fmt.Println("")

	err = cli.RenderTable(os.Stdout, a.flagFormat, []string{"#", "ID", "DEVICE", "SIZE"}, data, disks)
	if err != nil {
		return err
	}

	chosen, err := a.global.asker.AskInt("Disk to attach: ", 1, int64(len(disks)), "", nil)
	if err != nil {
		return err
	}

	a.disk = disks[chosen-1]
	a.value = a.disk.Path

	// Controller family
	families := []string{"scsi", "sata", "virtio", "ide"}
	family, err := a.global.asker.AskChoice("Controller type (scsi, sata, virtio, ide) [default=scsi]: ", families, "scsi")
	if err != nil {
		return err
	}

	a.ctrl, err = vmconfig.ParseControllerType(family)
	if err != nil {
		return err
	}

	err = a.askVM()
	if err != nil {
		return err
	}

	return a.computeSlot()
}

// renderObject renders the planned attachment.
func (a *DiskAttachment) renderObject() error {
	data := struct {
		VMID   int    `yaml:"VMID"`
		Slot   string `yaml:"Slot"`
		Disk   string `yaml:"Disk"`
		Device string `yaml:"Device node"`
		Size   string `yaml:"Size,omitempty"`
	}{
		a.vmid,
		a.key(),
		a.disk.ID,
		a.disk.Target,
		a.disk.Size,
	}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", string(out))

	return nil
}
