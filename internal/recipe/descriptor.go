package recipe

import "fmt"

// Identifies a package and the axes its build depends on.
//
// A descriptor is static configuration: it is set once when the lifecycle is
// created and never mutated afterwards. The URL is a repository template; the
// version tag is interpolated into it by [SourceURL] during acquisition.
type Descriptor struct {
	Name        string   `json:"name"`             // Package name (e.g., "zlib").
	Version     string   `json:"version"`          // Upstream version tag (e.g., "v1.2.0").
	License     string   `json:"license"`          // SPDX license identifier.
	URL         string   `json:"url"`              // Upstream repository URL.
	Description string   `json:"description"`      // Human-readable summary.
	SHA256      string   `json:"sha256,omitempty"` // Expected hex digest of the source archive; empty skips verification.
	Settings    Settings `json:"settings"`         // Build-relevant axes.
}

// Build-relevant axes declared by a recipe.
//
// The axes do not drive any logic inside the lifecycle itself; they are part
// of the package manager's queryable record and are forwarded to the
// build-system driver where applicable (e.g., the build type).
type Settings struct {
	OS        string `json:"os,omitempty"`
	Compiler  string `json:"compiler,omitempty"`
	BuildType string `json:"build_type,omitempty"`
	Arch      string `json:"arch,omitempty"`
}

// Validates that the descriptor carries everything acquisition needs.
func (d Descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrDescriptor)
	}
	if d.Version == "" {
		return fmt.Errorf("%w: version is required", ErrDescriptor)
	}
	if d.URL == "" {
		return fmt.Errorf("%w: url is required", ErrDescriptor)
	}
	return nil
}

// Returns the tag-qualified download URL for a descriptor.
//
// The version tag is interpolated into the repository URL following the
// archive convention of source forges:
//
//	<url>/archive/refs/tags/<version>.tar.gz
func SourceURL(d Descriptor) string {
	return fmt.Sprintf("%s/archive/refs/tags/%s.tar.gz", d.URL, d.Version)
}
