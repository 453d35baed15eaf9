package vmconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextIndex(t *testing.T) {
	tests := []struct {
		name       string
		configText string
		ctrl       ControllerType

		want int
	}{
		{
			name:       "empty config",
			configText: "",
			ctrl:       ControllerSCSI,
			want:       0,
		},
		{
			name:       "no matching family",
			configText: "sata0: /dev/disk/by-id/ata-foo\nnet0: virtio=AA:BB:CC:DD:EE:FF,bridge=vmbr0",
			ctrl:       ControllerSCSI,
			want:       0,
		},
		{
			name:       "sparse indexes",
			configText: "scsi2: local-lvm:vm-100-disk-0,size=32G\nscsi5: local-lvm:vm-100-disk-1\nscsi7: /dev/disk/by-id/ata-foo",
			ctrl:       ControllerSCSI,
			want:       8,
		},
		{
			name:       "dense indexes",
			configText: "virtio0: a\nvirtio1: b\nvirtio2: c",
			ctrl:       ControllerVirtIO,
			want:       3,
		},
		{
			name:       "double digit index",
			configText: "scsi10: local-lvm:vm-100-disk-0",
			ctrl:       ControllerSCSI,
			want:       11,
		},
		{
			name:       "longer tag does not cross match",
			configText: "scsi10: local-lvm:vm-100-disk-0",
			ctrl:       ControllerSATA,
			want:       0,
		},
		{
			name:       "usb does not match usb controller options",
			configText: "usb0: host=046d:c52b\nusb2: host=1-1.2",
			ctrl:       ControllerUSB,
			want:       3,
		},
		{
			name:       "hostpci at line start",
			configText: "hostpci0: 0000:01:00.0,pcie=1\nhostpci1: 0000:02:00",
			ctrl:       ControllerHostPCI,
			want:       2,
		},
		{
			name:       "hostpci with one marker",
			configText: "-hostpci3: 0000:01:00.0",
			ctrl:       ControllerHostPCI,
			want:       4,
		},
		{
			name:       "hostpci with two markers",
			configText: "--hostpci4: 0000:01:00.0",
			ctrl:       ControllerHostPCI,
			want:       5,
		},
		{
			name:       "markers are hostpci only",
			configText: "-scsi3: /dev/disk/by-id/ata-foo",
			ctrl:       ControllerSCSI,
			want:       0,
		},
		{
			name:       "tag without digits ignored",
			configText: "scsihw: virtio-scsi-pci\nscsi0: local-lvm:vm-100-disk-0",
			ctrl:       ControllerSCSI,
			want:       1,
		},
		{
			name:       "tag without separator ignored",
			configText: "scsi1 local-lvm:vm-100-disk-0",
			ctrl:       ControllerSCSI,
			want:       0,
		},
		{
			name:       "substring elsewhere in line ignored",
			configText: "description: disk was on scsi3: before",
			ctrl:       ControllerSCSI,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NextIndex(tt.configText, tt.ctrl))

			// Same input, same answer.
			require.Equal(t, tt.want, NextIndex(tt.configText, tt.ctrl))
		})
	}
}

func TestUsedIndexes(t *testing.T) {
	configText := `boot: order=scsi0
scsi0: local-lvm:vm-100-disk-0,size=32G
scsi5: /dev/disk/by-id/ata-foo
scsi2: local-lvm:vm-100-disk-1
sata1: /dev/disk/by-id/ata-bar
`

	require.Equal(t, []int{0, 2, 5}, UsedIndexes(configText, ControllerSCSI))
	require.Equal(t, []int{1}, UsedIndexes(configText, ControllerSATA))
	require.Empty(t, UsedIndexes(configText, ControllerVirtIO))
}

func TestParseControllerType(t *testing.T) {
	for _, ctrl := range []ControllerType{ControllerSCSI, ControllerSATA, ControllerVirtIO, ControllerIDE, ControllerHostPCI, ControllerUSB} {
		parsed, err := ParseControllerType(ctrl.Prefix())
		require.NoError(t, err)
		require.Equal(t, ctrl, parsed)
	}

	_, err := ParseControllerType("floppy")
	require.Error(t, err)
}
