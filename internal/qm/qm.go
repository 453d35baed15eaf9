// Package qm wraps the Proxmox VE "qm" command line tool.
package qm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pvetools/pve-attach/internal/logger"
	"github.com/pvetools/pve-attach/internal/subprocess"
)

// VM is one virtual machine known to the host.
type VM struct {
	ID     int
	Name   string
	Status string
}

// Client talks to the local Proxmox VE host through the qm tool.
type Client struct {
	// runner is swapped out by the tests.
	runner func(ctx context.Context, name string, arg ...string) (string, error)
}

// NewClient returns a new qm client.
func NewClient() *Client {
	return &Client{runner: subprocess.RunCommandContext}
}

// VMs lists the virtual machines present on the host.
func (c *Client) VMs(ctx context.Context) ([]VM, error) {
	output, err := c.runner(ctx, "qm", "list")
	if err != nil {
		return nil, fmt.Errorf("Failed to list VMs: %w", err)
	}

	vms := []VM{}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			// Header or decoration line.
			continue
		}

		vms = append(vms, VM{ID: id, Name: fields[1], Status: fields[2]})
	}

	return vms, nil
}

// Config returns the raw configuration text of a VM.
//
// A failure to retrieve the configuration (unknown VMID, no access) is
// reported as an error. An existing VM with no devices yields a valid,
// possibly device-free text, never an error.
func (c *Client) Config(ctx context.Context, vmid int) (string, error) {
	output, err := c.runner(ctx, "qm", "config", strconv.Itoa(vmid))
	if err != nil {
		return "", fmt.Errorf("Failed to retrieve configuration of VM %d: %w", vmid, err)
	}

	return output, nil
}

// Command returns the argv that Set would execute, for display purposes.
func (c *Client) Command(vmid int, key string, value string) []string {
	return []string{"qm", "set", strconv.Itoa(vmid), fmt.Sprintf("-%s", key), value}
}

// Set applies a single device directive to a VM and returns the
// command output.
func (c *Client) Set(ctx context.Context, vmid int, key string, value string) (string, error) {
	args := c.Command(vmid, key, value)

	logger.Info("Updating VM configuration", logger.Ctx{"vmid": vmid, "key": key, "value": value})

	output, err := c.runner(ctx, args[0], args[1:]...)
	if err != nil {
		return output, err
	}

	return output, nil
}
