package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "quarry"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Default work root for one package build invocation.
//
// The work root owns the source, build, and staging subdirectories when the
// caller does not designate its own locations.
//
//	Linux:   $XDG_STATE_HOME/quarry/<name>-<version>
//	macOS:   ~/Library/Application Support/quarry/<name>-<version>
func WorkRoot(name, version string) string {
	return filepath.Join(xdg.StateHome, toolName, name+"-"+version)
}

// Default staging location under a work root. The build-system driver
// installs compiled outputs here before they are registered as a package.
func StageDir(workRoot string) string {
	return filepath.Join(workRoot, "stage")
}

// Directory under a work root where the build-system driver generates its
// build tree.
func BuildDir(workRoot string) string {
	return filepath.Join(workRoot, "build")
}
