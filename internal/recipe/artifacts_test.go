package recipe

import (
	"os"
	"path/filepath"
	"testing"
)

// Creates a staging location whose lib area contains the given files.
func stagingWith(t *testing.T, files ...string) string {
	t.Helper()

	staging := t.TempDir()
	lib := filepath.Join(staging, "lib")
	if err := os.MkdirAll(lib, 0755); err != nil {
		t.Fatal(err)
	}

	for _, f := range files {
		if err := os.WriteFile(filepath.Join(lib, f), []byte("bin"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	return staging
}

func TestDescribe(t *testing.T) {
	staging := stagingWith(t, "libfoo.a", "libbar.so")

	set, err := Describe(staging)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	if len(set) != 2 {
		t.Fatalf("len(set) = %d, want 2: %v", len(set), set)
	}
	// os.ReadDir lists lexically: libbar.so before libfoo.a.
	if set[0] != "libbar" || set[1] != "libfoo" {
		t.Fatalf("set = %v, want [libbar libfoo]", set)
	}
}

func TestDescribeEmptyStaging(t *testing.T) {
	set, err := Describe(t.TempDir())
	if err != nil {
		t.Fatalf("Describe on empty staging: %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("set = %v, want empty", set)
	}
}

func TestDescribeEmptyLibDir(t *testing.T) {
	set, err := Describe(stagingWith(t))
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("set = %v, want empty", set)
	}
}

func TestDescribeDeduplicates(t *testing.T) {
	staging := stagingWith(t, "libfoo.a", "libfoo.so", "libfoo.so.1.2")

	set, err := Describe(staging)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if len(set) != 1 || set[0] != "libfoo" {
		t.Fatalf("set = %v, want [libfoo]", set)
	}
}

func TestDescribeIgnoresUnrecognized(t *testing.T) {
	staging := stagingWith(t, "libfoo.a", "pkgconfig", "README", "foo.o")
	if err := os.Mkdir(filepath.Join(staging, "lib", "cmake"), 0755); err != nil {
		t.Fatal(err)
	}

	set, err := Describe(staging)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if len(set) != 1 || set[0] != "libfoo" {
		t.Fatalf("set = %v, want [libfoo]", set)
	}
}

func TestDescribeIdempotent(t *testing.T) {
	staging := stagingWith(t, "libfoo.a", "libbar.so", "libbaz.dylib")

	first, err := Describe(staging)
	if err != nil {
		t.Fatalf("first Describe: %v", err)
	}
	second, err := Describe(staging)
	if err != nil {
		t.Fatalf("second Describe: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("len mismatch: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order differs at %d: %v vs %v", i, first, second)
		}
	}
}

func TestLibName(t *testing.T) {
	tests := []struct {
		file string
		want string
		ok   bool
	}{
		{file: "libfoo.a", want: "libfoo", ok: true},
		{file: "libbar.so", want: "libbar", ok: true},
		{file: "libbaz.so.1.2.3", want: "libbaz", ok: true},
		{file: "libqux.dylib", want: "libqux", ok: true},
		{file: "foo.lib", want: "foo", ok: true},
		{file: "foo.dll", want: "foo", ok: true},
		{file: "README", ok: false},
		{file: "foo.o", ok: false},
		{file: ".a", ok: false},
		{file: "libfoo.a.sig", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, ok := libName(tt.file)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("name = %q, want %q", got, tt.want)
			}
		})
	}
}
