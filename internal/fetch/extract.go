package fetch

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

const (
	dirMode  os.FileMode = 0755
	fileMode os.FileMode = 0644
)

// Opens a gzip reader over r.
func gzipReader(r io.Reader) (io.Reader, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	return gr, nil
}

// Extracts the tar archive at src into dest, stripping the single enclosing
// root directory so dest directly contains the build tree.
//
// The archive must carry exactly one top-level directory; entries under a
// second top level fail the extraction. An archive with no regular files is
// an error. Entry paths are joined with securejoin so a hostile archive
// cannot write outside dest.
func extractArchive(src string, scheme compression, dest string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}
	defer f.Close()

	r, err := decompress(f, scheme)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dest, dirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}

	tr := tar.NewReader(r)
	files := 0
	root := ""

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrArchive, err)
		}

		name, top, ok := stripRoot(hdr.Name)
		if !ok {
			continue
		}

		if root == "" {
			root = top
		} else if top != root {
			return fmt.Errorf("%w: multiple top-level entries (%q, %q)", ErrArchive, root, top)
		}

		if name == "" {
			continue // The enclosing root directory itself.
		}

		wrote, err := writeEntry(tr, hdr, dest, name)
		if err != nil {
			return err
		}
		if wrote {
			files++
		}
	}

	if files == 0 {
		return fmt.Errorf("%w: archive contains no files", ErrArchive)
	}

	slog.Debug("extracted source archive", "dest", dest, "root", root, "files", files)
	return nil
}

// Splits the enclosing root directory off a tar entry name.
//
// Returns the entry path relative to the root, the root component, and
// whether the entry should be extracted at all. Entries that clean to
// nothing are skipped.
func stripRoot(name string) (rel, top string, ok bool) {
	name = path.Clean(strings.TrimPrefix(name, "/"))
	if name == "." || name == "" {
		return "", "", false
	}

	top, rel, found := strings.Cut(name, "/")
	if !found {
		return "", top, true
	}
	return rel, top, true
}

// Materializes a single tar entry under dest. Returns whether a regular
// file was written.
func writeEntry(tr *tar.Reader, hdr *tar.Header, dest, name string) (bool, error) {
	target, err := securejoin.SecureJoin(dest, name)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrArchive, err)
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, dirMode); err != nil {
			return false, fmt.Errorf("%w: %w", ErrArchive, err)
		}

	case tar.TypeReg:
		if err := writeFile(tr, hdr, target); err != nil {
			return false, err
		}
		return true, nil

	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
			return false, fmt.Errorf("%w: %w", ErrArchive, err)
		}
		if err := os.Symlink(hdr.Linkname, target); err != nil {
			return false, fmt.Errorf("%w: %w", ErrArchive, err)
		}

	default:
		// Hard links, devices, and the rest do not occur in source
		// archives worth supporting.
	}

	return false, nil
}

// Writes one regular file from the tar stream, preserving the execute bit.
func writeFile(tr *tar.Reader, hdr *tar.Header, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}

	mode := fileMode
	if hdr.FileInfo().Mode()&0111 != 0 {
		mode |= 0111
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}

	if _, err := io.Copy(f, tr); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}

	return f.Close()
}
