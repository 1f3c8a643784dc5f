package recipe

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Subdirectory of the staging location that receives library outputs.
const libSubfolder = "lib"

// Ordered, duplicate-free set of installed library artifact names.
//
// Names are recorded as discovered, stripped of path and extension but
// keeping the platform's library prefix: "lib/libfoo.a" yields "libfoo".
// Versioned shared objects reduce to the same stem, so "libfoo.so.1.2"
// also yields "libfoo".
type ArtifactSet []string

// Scans the library-output area of a staging location and collects every
// recognized library file name.
//
// The scan is a pure function of the directory listing: entries are visited
// in listing order, filtered by the recognized extension set, and
// de-duplicated preserving discovery order. An empty or absent library area
// yields an empty set, not an error: a header-only package is valid, and
// whether that is acceptable is the caller's decision.
func Describe(staging string) (ArtifactSet, error) {
	entries, err := os.ReadDir(filepath.Join(staging, libSubfolder))
	if errors.Is(err, fs.ErrNotExist) {
		return ArtifactSet{}, nil
	}
	if err != nil {
		return nil, err
	}

	set := ArtifactSet{}
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := libName(entry.Name())
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		set = append(set, name)
	}

	return set, nil
}

// Extensions recognized as library artifacts.
var libExtensions = []string{".a", ".so", ".dylib", ".lib", ".dll"}

// Extracts the artifact name from a library file name.
//
// Returns the file name without its recognized extension and true, or
// ("", false) when the file is not a recognized library. Versioned shared
// objects ("libfoo.so.1.2") are cut at the ".so" marker.
func libName(file string) (string, bool) {
	if i := strings.Index(file, ".so"); i > 0 {
		rest := file[i+len(".so"):]
		if rest == "" || strings.HasPrefix(rest, ".") {
			return file[:i], true
		}
	}

	for _, ext := range libExtensions {
		if stem, ok := strings.CutSuffix(file, ext); ok && stem != "" {
			return stem, true
		}
	}

	return "", false
}
