package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/ulikunitz/xz"
)

var (
	ErrDownload = errors.New("download failed")
	ErrDigest   = errors.New("archive digest mismatch")
	ErrArchive  = errors.New("invalid archive")
)

// Default timeout for a single archive download.
const downloadTimeout = 15 * time.Minute

// Downloads upstream source archives and materializes their build trees.
//
// A client performs no retries: a failed transfer is surfaced to the caller,
// and retry policy belongs to whoever orchestrates the build.
type Client struct {
	httpClient *http.Client
}

// Creates a client with a default HTTP transport.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: downloadTimeout},
	}
}

// Retrieves the archive at url and extracts its build tree directly into
// dest, stripping the archive's single enclosing root directory.
//
// expected is the hex SHA-256 of the archive, verified while streaming; an
// empty string skips verification. Compression is selected by the URL
// suffix: ".tar.gz"/".tgz" for gzip, ".tar.xz" for xz.
func (c *Client) Get(ctx context.Context, url, dest, expected string) error {
	tmp, err := c.download(ctx, url, expected)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	return extractArchive(tmp, compressionFor(url), dest)
}

// Downloads url to a temporary file, verifying the digest when given.
// Returns the temporary file path; the caller removes it.
func (c *Client) download(ctx context.Context, url, expected string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownload, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned status %d", ErrDownload, url, resp.StatusCode)
	}

	f, err := os.CreateTemp("", "quarry-archive-*")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownload, err)
	}

	path := f.Name()
	if err := copyVerified(f, resp.Body, expected); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: %w", ErrDownload, err)
	}

	return path, nil
}

// Streams body into w, verifying the SHA-256 digest when expected is
// non-empty.
func copyVerified(w io.Writer, body io.Reader, expected string) error {
	if expected == "" {
		if _, err := io.Copy(w, body); err != nil {
			return fmt.Errorf("%w: %w", ErrDownload, err)
		}
		return nil
	}

	want := digest.NewDigestFromEncoded(digest.SHA256, expected)
	if err := want.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrDigest, err)
	}

	verifier := want.Verifier()
	if _, err := io.Copy(io.MultiWriter(w, verifier), body); err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}

	if !verifier.Verified() {
		return fmt.Errorf("%w: expected sha256 %s", ErrDigest, expected)
	}

	return nil
}

// Compression scheme of a source archive.
type compression int

const (
	compressionGzip compression = iota
	compressionXz
)

// Selects the compression scheme from the archive URL or file name.
// Defaults to gzip, the convention of forge tag archives.
func compressionFor(url string) compression {
	if strings.HasSuffix(url, ".tar.xz") || strings.HasSuffix(url, ".txz") {
		return compressionXz
	}
	return compressionGzip
}

// Opens a decompressing reader over r for the given scheme.
func decompress(r io.Reader, scheme compression) (io.Reader, error) {
	switch scheme {
	case compressionXz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrArchive, err)
		}
		return xr, nil
	default:
		return gzipReader(r)
	}
}
