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

// USBAttachment handles passing a USB device through to a VM.
type USBAttachment struct {
	*Attachment

	device scan.USBDevice
}

// gatherInfo asks the user which USB device to attach.
func (a *USBAttachment) gatherInfo() error {
	devices, err := scan.USBDevices(a.ctx)
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		return errors.New("No USB devices found on this host")
	}

	data := [][]string{}
	for _, dev := range devices {
		data = append(data, []string{strconv.Itoa(dev.Index), dev.ID, dev.Bus, dev.Device, dev.Description})
	}

	fmt.Println("")

	err = cli.RenderTable(os.Stdout, a.flagFormat, []string{"#", "ID", "BUS", "DEVICE", "DESCRIPTION"}, data, devices)
	if err != nil {
		return err
	}

	chosen, err := a.global.asker.AskInt("Device to attach: ", 1, int64(len(devices)), "", nil)
	if err != nil {
		return err
	}

	a.device = devices[chosen-1]
	a.ctrl = vmconfig.ControllerUSB
	a.value = fmt.Sprintf("host=%s", a.device.ID)

	err = a.askVM()
	if err != nil {
		return err
	}

	return a.computeSlot()
}

// renderObject renders the planned attachment.
func (a *USBAttachment) renderObject() error {
	data := struct {
		VMID        int    `yaml:"VMID"`
		Slot        string `yaml:"Slot"`
		Device      string `yaml:"Device"`
		Description string `yaml:"Description,omitempty"`
	}{
		a.vmid,
		a.key(),
		a.device.ID,
		a.device.Description,
	}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", string(out))

	return nil
}
