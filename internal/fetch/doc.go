// Package fetch acquires upstream source archives.
//
// A [Client] downloads a compressed tarball over HTTP, optionally verifying
// its SHA-256 digest while streaming, and extracts the build tree directly
// into a destination directory. The single enclosing root directory that
// forge tag archives carry is stripped during extraction, and entry paths
// are contained to the destination.
//
// Gzip and xz compression are supported, selected by the archive name. The
// client performs no retries and keeps no state between calls.
package fetch
