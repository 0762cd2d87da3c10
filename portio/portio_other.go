//go:build !linux && !windows

package portio

func openPorts() (Ports, error) {
	return nil, ErrUnsupported
}
