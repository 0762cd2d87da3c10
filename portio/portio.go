// Package portio provides raw byte access to legacy x86 I/O ports.
//
// Port access needs elevated privileges on every supported platform, so the
// capability is acquired once at startup and injected into whatever needs it.
package portio

import "errors"

// ErrUnsupported is returned by Open on platforms without a raw port mechanism.
var ErrUnsupported = errors.New("raw port I/O is not supported on this platform")

// Ports is the capability needed to drive the PC speaker: byte-wide reads and
// writes against physical I/O address space.
type Ports interface {
	ReadPort(port uint16) (byte, error)
	WritePort(port uint16, value byte) error
	Close() error
}

// Open acquires the platform's port capability. Failure here means the
// process cannot make sound at all and should exit with a diagnostic.
func Open() (Ports, error) {
	return openPorts()
}
