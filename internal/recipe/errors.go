package recipe

import "errors"

var (
	ErrAcquisition   = errors.New("source acquisition failed")
	ErrConfiguration = errors.New("build system configuration failed")
	ErrCompilation   = errors.New("compilation failed")
	ErrInstallation  = errors.New("installation failed")
	ErrOutOfOrder    = errors.New("lifecycle phase out of order")
	ErrFrozen        = errors.New("build configuration is frozen")
	ErrDescriptor    = errors.New("invalid descriptor")
)
