package buildsys

import "errors"

var (
	ErrNoManifest = errors.New("no build-system manifest in source tree")
	ErrTool       = errors.New("build tool invocation failed")
)
