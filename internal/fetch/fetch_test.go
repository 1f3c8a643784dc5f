package fetch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ulikunitz/xz"
)

// Builds a tar stream with a single enclosing root directory.
func tarTree(t *testing.T, root string, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	if root != "" {
		if err := tw.WriteHeader(&tar.Header{Name: root + "/", Mode: 0755, Typeflag: tar.TypeDir}); err != nil {
			t.Fatal(err)
		}
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		content := files[name]
		hdr := &tar.Header{
			Name:     root + "/" + name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// Serves body for every request and records the last request path.
func archiveServer(t *testing.T, body []byte) (*httptest.Server, *string) {
	t.Helper()

	var lastPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath = r.URL.Path
		w.Write(body)
	}))
	t.Cleanup(srv.Close)

	return srv, &lastPath
}

func TestGetExtractsStrippedRoot(t *testing.T) {
	body := gzipped(t, tarTree(t, "foo-1.2.0", map[string]string{
		"CMakeLists.txt": "project(foo)\n",
		"src/foo.c":      "int foo;\n",
	}))
	srv, lastPath := archiveServer(t, body)

	dest := filepath.Join(t.TempDir(), "src")
	err := NewClient().Get(context.Background(), srv.URL+"/archive/refs/tags/v1.2.0.tar.gz", dest, "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if *lastPath != "/archive/refs/tags/v1.2.0.tar.gz" {
		t.Fatalf("requested path = %q, want the tag archive path", *lastPath)
	}

	// The root-stripping invariant: the build tree is a direct child of dest.
	if _, err := os.Stat(filepath.Join(dest, "CMakeLists.txt")); err != nil {
		t.Fatalf("CMakeLists.txt not a direct child of dest: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "src", "foo.c")); err != nil {
		t.Fatalf("nested file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "foo-1.2.0")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("enclosing root directory leaked into dest")
	}
}

func TestGetStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	err := NewClient().Get(context.Background(), srv.URL+"/archive/refs/tags/v0.tar.gz", t.TempDir(), "")
	if !errors.Is(err, ErrDownload) {
		t.Fatalf("Get = %v, want ErrDownload", err)
	}
}

func TestGetCorruptArchive(t *testing.T) {
	srv, _ := archiveServer(t, []byte("this is not a gzip stream"))

	err := NewClient().Get(context.Background(), srv.URL+"/a.tar.gz", t.TempDir(), "")
	if !errors.Is(err, ErrArchive) {
		t.Fatalf("Get = %v, want ErrArchive", err)
	}
}

func TestGetEmptyArchive(t *testing.T) {
	srv, _ := archiveServer(t, gzipped(t, tarTree(t, "empty-1.0", nil)))

	err := NewClient().Get(context.Background(), srv.URL+"/a.tar.gz", t.TempDir(), "")
	if !errors.Is(err, ErrArchive) {
		t.Fatalf("Get = %v, want ErrArchive for an archive with no files", err)
	}
}

func TestGetVerifiesDigest(t *testing.T) {
	body := gzipped(t, tarTree(t, "foo-1.0", map[string]string{"CMakeLists.txt": "x"}))
	sum := sha256.Sum256(body)
	good := hex.EncodeToString(sum[:])

	t.Run("match", func(t *testing.T) {
		srv, _ := archiveServer(t, body)
		dest := filepath.Join(t.TempDir(), "src")
		if err := NewClient().Get(context.Background(), srv.URL+"/a.tar.gz", dest, good); err != nil {
			t.Fatalf("Get with matching digest: %v", err)
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		srv, _ := archiveServer(t, body)
		wrong := hex.EncodeToString(bytes.Repeat([]byte{0xab}, 32))
		err := NewClient().Get(context.Background(), srv.URL+"/a.tar.gz", filepath.Join(t.TempDir(), "src"), wrong)
		if !errors.Is(err, ErrDigest) {
			t.Fatalf("Get = %v, want ErrDigest", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		srv, _ := archiveServer(t, body)
		err := NewClient().Get(context.Background(), srv.URL+"/a.tar.gz", filepath.Join(t.TempDir(), "src"), "nothex")
		if !errors.Is(err, ErrDigest) {
			t.Fatalf("Get = %v, want ErrDigest", err)
		}
	})
}

func TestGetXzArchive(t *testing.T) {
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := xw.Write(tarTree(t, "foo-1.0", map[string]string{"CMakeLists.txt": "x"})); err != nil {
		t.Fatal(err)
	}
	if err := xw.Close(); err != nil {
		t.Fatal(err)
	}

	srv, _ := archiveServer(t, buf.Bytes())
	dest := filepath.Join(t.TempDir(), "src")

	if err := NewClient().Get(context.Background(), srv.URL+"/a.tar.xz", dest, ""); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "CMakeLists.txt")); err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
}

func TestCompressionFor(t *testing.T) {
	tests := []struct {
		url  string
		want compression
	}{
		{url: "https://example.org/foo/archive/refs/tags/v1.tar.gz", want: compressionGzip},
		{url: "https://example.org/foo.tgz", want: compressionGzip},
		{url: "https://example.org/foo.tar.xz", want: compressionXz},
		{url: "https://example.org/foo.txz", want: compressionXz},
		{url: "https://example.org/foo", want: compressionGzip},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := compressionFor(tt.url); got != tt.want {
				t.Fatalf("compressionFor = %d, want %d", got, tt.want)
			}
		})
	}
}
