//go:build linux

package portio

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// devPorts accesses I/O ports through /dev/port, where the file offset is the
// port address. Opening it requires root (or CAP_SYS_RAWIO).
type devPorts struct {
	fd int
}

func openPorts() (Ports, error) {
	fd, err := unix.Open("/dev/port", unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open /dev/port (root privileges required): %w", err)
	}
	return &devPorts{fd: fd}, nil
}

func (p *devPorts) ReadPort(port uint16) (byte, error) {
	buf := make([]byte, 1)
	if _, err := unix.Pread(p.fd, buf, int64(port)); err != nil {
		return 0, fmt.Errorf("failed to read port 0x%02X: %w", port, err)
	}
	return buf[0], nil
}

func (p *devPorts) WritePort(port uint16, value byte) error {
	if _, err := unix.Pwrite(p.fd, []byte{value}, int64(port)); err != nil {
		return fmt.Errorf("failed to write port 0x%02X: %w", port, err)
	}
	return nil
}

func (p *devPorts) Close() error {
	return unix.Close(p.fd)
}
