package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/pvetools/pve-attach/internal/cli"
	"github.com/pvetools/pve-attach/internal/qm"
	"github.com/pvetools/pve-attach/internal/vmconfig"
)

// Attacher defines the methods required to perform a device attachment.
type Attacher interface {
	gatherInfo() error
	renderObject() error
	attach() error
}

// Attachment is a base representation of an attachment, which is extended
// by the per-device-class structs.
type Attachment struct {
	global *cmdGlobal

	ctx        context.Context
	client     *qm.Client
	flagDryRun bool
	flagFormat string

	vmid  int
	ctrl  vmconfig.ControllerType
	slot  int
	value string
}

// askVM lists the VMs on the host and asks which one to attach to.
func (a *Attachment) askVM() error {
	vms, err := a.client.VMs(a.ctx)
	if err != nil {
		return err
	}

	if len(vms) == 0 {
		return errors.New("No VMs found on this host")
	}

	sort.Slice(vms, func(i, j int) bool {
		return vms[i].ID < vms[j].ID
	})

	data := [][]string{}
	valid := []int64{}
	for _, vm := range vms {
		data = append(data, []string{strconv.Itoa(vm.ID), vm.Name, vm.Status})
		valid = append(valid, int64(vm.ID))
	}

	fmt.Println("")

	err = cli.RenderTable(os.Stdout, a.flagFormat, []string{"VMID", "NAME", "STATUS"}, data, vms)
	if err != nil {
		return err
	}

	vmid, err := a.global.asker.AskInt("Target VMID: ", -1, -1, "", func(v int64) error {
		for _, id := range valid {
			if id == v {
				return nil
			}
		}

		return fmt.Errorf("No VM with ID %d", v)
	})
	if err != nil {
		return err
	}

	a.vmid = int(vmid)

	return nil
}

// computeSlot fetches the VM configuration and computes the next free
// slot for the selected controller family.
func (a *Attachment) computeSlot() error {
	configText, err := a.client.Config(a.ctx, a.vmid)
	if err != nil {
		return err
	}

	a.slot = vmconfig.NextIndex(configText, a.ctrl)

	return nil
}

// key returns the configuration key of the attachment (e.g. "scsi2").
func (a *Attachment) key() string {
	return fmt.Sprintf("%s%d", a.ctrl.Prefix(), a.slot)
}

// attach asks for a final confirmation and then applies the directive.
func (a *Attachment) attach() error {
	command := shellquote.Join(a.client.Command(a.vmid, a.key(), a.value)...)

	if a.flagDryRun {
		fmt.Printf("%s\n", command)
		return nil
	}

	ok, err := a.global.asker.AskBool(fmt.Sprintf("Run \"%s\"? [default=no]: ", command), "no")
	if err != nil {
		return err
	}

	if !ok {
		return errors.New("Attachment aborted by user")
	}

	output, err := a.client.Set(a.ctx, a.vmid, a.key(), a.value)
	if err != nil {
		return err
	}

	if output != "" {
		fmt.Printf("%s", output)
	}

	fmt.Printf("Device attached to VM %d as %s\n", a.vmid, a.key())

	return nil
}

type cmdAttach struct {
	global *cmdGlobal

	flagDryRun bool
	flagFormat string
}

func (c *cmdAttach) command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "pve-attach"
	cmd.Short = "Attach host devices to a Proxmox VE virtual machine"
	cmd.Long = `Description:
  Attach host devices to a Proxmox VE virtual machine

  This tool walks you through attaching a physical disk, a PCIe device
  or a USB device to one of the host's virtual machines. It enumerates
  the matching hardware, computes the next free device slot on the
  target VM and then runs the resulting "qm set" command after a final
  confirmation.

  For PCIe devices the full IOMMU group of the chosen device is shown
  first, as every member of the group is handed to the VM together.
`
	cmd.RunE = c.run
	cmd.Flags().BoolVar(&c.flagDryRun, "dry-run", false, "Print the final command instead of running it")
	cmd.Flags().StringVar(&c.flagFormat, "format", "table", `Format (csv|json|table|yaml|compact)`+"``")

	return cmd
}

func (c *cmdAttach) run(_ *cobra.Command, _ []string) error {
	err := cli.ValidateFlagFormat(c.flagFormat)
	if err != nil {
		return err
	}

	// The wizard needs somebody to answer its questions.
	if !term.IsTerminal(unix.Stdin) {
		return errors.New("This tool must be run from a terminal")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-sigChan
		cancel()
		os.Exit(1) //nolint:revive
	}()

	// Provide attachment type
	attachmentType, err := c.global.asker.AskInt(`
What would you like to attach?
1) Physical disk
2) PCIe device
3) USB device

Please enter the number of your choice: `, 1, 3, "", nil)
	if err != nil {
		return err
	}

	base := &Attachment{
		global:     c.global,
		ctx:        ctx,
		client:     qm.NewClient(),
		flagDryRun: c.flagDryRun,
		flagFormat: c.flagFormat,
	}

	var attacher Attacher
	switch attachmentType {
	case 1:
		attacher = &DiskAttachment{Attachment: base}
	case 2:
		attacher = &PCIAttachment{Attachment: base}
	case 3:
		attacher = &USBAttachment{Attachment: base}
	}

	err = attacher.gatherInfo()
	if err != nil {
		return err
	}

	err = attacher.renderObject()
	if err != nil {
		return err
	}

	return attacher.attach()
}
