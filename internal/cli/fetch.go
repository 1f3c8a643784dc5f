package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/quarryhq/quarry/internal/paths"
)

// Represents the 'quarry fetch' command.
type FetchCmd struct {
	Recipe string `arg:"" help:"Path to the recipe file." type:"existingfile"`
	Work   string `help:"Override the default work directory." placeholder:"DIR"`
}

// Executes the fetch command: source acquisition only, printing the source
// subfolder the build tree was materialized into.
func (c *FetchCmd) Run(ctx context.Context) error {
	desc, err := loadRecipe(c.Recipe)
	if err != nil {
		return err
	}

	work := c.Work
	if work == "" {
		work = paths.WorkRoot(desc.Name, desc.Version)
	}

	if err := os.MkdirAll(work, paths.DefaultDirMode); err != nil {
		return err
	}

	lc, err := newLifecycle(desc, work, paths.StageDir(work))
	if err != nil {
		return err
	}

	layout, err := lc.FetchSource(ctx)
	if err != nil {
		return err
	}

	fmt.Println(layout.Root)
	return nil
}
