//go:build windows

package portio

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// inpOut drives ports through the InpOut driver DLL. The DLL installs its
// kernel-mode helper on first load, which requires administrator rights; the
// DLL must be present next to the binary or on the DLL search path.
type inpOut struct {
	dll   *windows.DLL
	read  *windows.Proc
	write *windows.Proc
}

func openPorts() (Ports, error) {
	dll, err := windows.LoadDLL("inpoutx64.dll")
	if err != nil {
		return nil, fmt.Errorf("failed to load inpoutx64.dll (administrator rights and the InpOut driver are required): %w", err)
	}
	read, err := dll.FindProc("DlPortReadPortUchar")
	if err != nil {
		dll.Release()
		return nil, fmt.Errorf("incompatible InpOut DLL: %w", err)
	}
	write, err := dll.FindProc("DlPortWritePortUchar")
	if err != nil {
		dll.Release()
		return nil, fmt.Errorf("incompatible InpOut DLL: %w", err)
	}
	return &inpOut{dll: dll, read: read, write: write}, nil
}

func (p *inpOut) ReadPort(port uint16) (byte, error) {
	// Proc.Call always returns a non-nil error value; the driver calls
	// themselves cannot fail once the DLL is loaded.
	v, _, _ := p.read.Call(uintptr(port))
	return byte(v), nil
}

func (p *inpOut) WritePort(port uint16, value byte) error {
	p.write.Call(uintptr(port), uintptr(value))
	return nil
}

func (p *inpOut) Close() error {
	return p.dll.Release()
}
