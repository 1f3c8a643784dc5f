package buildsys

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File CMake requires at the root of a configurable source tree.
const cmakeManifest = "CMakeLists.txt"

// CMake drives a CMake-based build: configure against a source tree, compile,
// and install into a prefix.
//
// The build directory holds the generated build system and compiled outputs
// between the three steps of one invocation. CMake is stateful in the same
// way the lifecycle is: Configure must run before Build, Build before
// Install; the tool itself enforces this and reports violations through its
// exit code.
type CMake struct {
	buildDir  string
	buildType string
}

// A CMake construction option.
type CMakeOption func(*CMake)

// Sets the CMAKE_BUILD_TYPE passed at configure time (e.g., "Release").
func WithBuildType(t string) CMakeOption {
	return func(c *CMake) { c.buildType = t }
}

// Creates a CMake driver that generates into buildDir.
func NewCMake(buildDir string, opts ...CMakeOption) *CMake {
	c := &CMake{buildDir: buildDir}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generates the build system for sourceRoot into the build directory,
// applying every definition on the command line.
//
// Fails with [ErrNoManifest] before spawning the tool when the source tree
// has no CMakeLists.txt at its root.
func (c *CMake) Configure(ctx context.Context, sourceRoot string, definitions map[string]string) error {
	if _, err := os.Stat(filepath.Join(sourceRoot, cmakeManifest)); err != nil {
		return fmt.Errorf("%w: %s has no %s", ErrNoManifest, sourceRoot, cmakeManifest)
	}

	args := c.configureArgs(sourceRoot, definitions)
	slog.Debug("cmake configure", "args", strings.Join(args, " "))

	return c.run(ctx, args)
}

// Compiles the configured build tree.
func (c *CMake) Build(ctx context.Context) error {
	return c.run(ctx, []string{"--build", c.buildDir})
}

// Installs compiled outputs into prefix.
func (c *CMake) Install(ctx context.Context, prefix string) error {
	return c.run(ctx, []string{"--install", c.buildDir, "--prefix", prefix})
}

// Builds the configure argument list. Definitions are emitted in sorted
// order so the invocation is deterministic for a given option set.
func (c *CMake) configureArgs(sourceRoot string, definitions map[string]string) []string {
	args := []string{"-S", sourceRoot, "-B", c.buildDir}

	if c.buildType != "" {
		args = append(args, "-DCMAKE_BUILD_TYPE="+c.buildType)
	}

	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		args = append(args, fmt.Sprintf("-D%s=%s", name, definitions[name]))
	}

	return args
}

// Invokes the cmake binary and maps a non-zero exit to an error carrying
// the tool's stderr.
func (c *CMake) run(ctx context.Context, args []string) error {
	result, err := runTool(ctx, "cmake", args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTool, err)
	}

	if result.ExitCode != 0 {
		return fmt.Errorf("%w: exit code %d: %s", ErrTool, result.ExitCode, strings.TrimSpace(result.Stderr))
	}

	return nil
}
