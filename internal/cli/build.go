package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/quarryhq/quarry/internal/buildsys"
	"github.com/quarryhq/quarry/internal/fetch"
	"github.com/quarryhq/quarry/internal/paths"
	"github.com/quarryhq/quarry/internal/recipe"
)

// Represents the 'quarry build' command.
type BuildCmd struct {
	Recipe string            `arg:"" help:"Path to the recipe file." type:"existingfile"`
	Static bool              `help:"Request a static library build."`
	Define map[string]string `short:"D" help:"Extra build definitions (name=value)." placeholder:"NAME=VALUE"`
	Work   string            `help:"Override the default work directory." placeholder:"DIR"`
	Stage  string            `help:"Override the default staging location." placeholder:"DIR"`
}

// Executes the build command: the full lifecycle from source acquisition to
// artifact registration, printing the artifact set on success.
func (c *BuildCmd) Run(ctx context.Context) error {
	desc, err := loadRecipe(c.Recipe)
	if err != nil {
		return err
	}

	work := c.Work
	if work == "" {
		work = paths.WorkRoot(desc.Name, desc.Version)
	}
	stage := c.Stage
	if stage == "" {
		stage = paths.StageDir(work)
	}

	if err := os.MkdirAll(work, paths.DefaultDirMode); err != nil {
		return err
	}

	lc, err := newLifecycle(desc, work, stage)
	if err != nil {
		return err
	}

	if _, err := lc.FetchSource(ctx); err != nil {
		return err
	}

	opts, err := buildOptions(c.Static, c.Define)
	if err != nil {
		return err
	}

	if _, err := lc.Build(ctx, opts); err != nil {
		return err
	}

	if err := lc.Package(ctx); err != nil {
		return err
	}

	artifacts, err := lc.DescribeArtifacts()
	if err != nil {
		return err
	}

	for _, name := range artifacts {
		fmt.Println(name)
	}

	return nil
}

// Wires a lifecycle with the CMake driver and HTTP source transport.
func newLifecycle(desc recipe.Descriptor, work, stage string) (*recipe.Lifecycle, error) {
	var cmakeOpts []buildsys.CMakeOption
	if desc.Settings.BuildType != "" {
		cmakeOpts = append(cmakeOpts, buildsys.WithBuildType(desc.Settings.BuildType))
	}

	return recipe.New(desc, recipe.Config{
		Driver:   buildsys.NewCMake(paths.BuildDir(work), cmakeOpts...),
		Getter:   fetch.NewClient(),
		WorkRoot: work,
		Staging:  stage,
	})
}

// Assembles the option set from CLI flags. Explicit -D definitions are
// applied after the static flag, so they win on collision.
func buildOptions(static bool, defines map[string]string) (*recipe.Options, error) {
	opts := recipe.NewOptions()

	if static {
		if err := opts.Set(recipe.OptionStaticLib, "1"); err != nil {
			return nil, err
		}
	}

	for name, value := range defines {
		if err := opts.Set(name, value); err != nil {
			return nil, err
		}
	}

	return opts, nil
}
