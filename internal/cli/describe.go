package cli

import (
	"context"
	"fmt"

	"github.com/quarryhq/quarry/internal/recipe"
)

// Represents the 'quarry describe' command.
type DescribeCmd struct {
	Staging string `arg:"" help:"Staging location to scan." type:"existingdir"`
}

// Executes the describe command against an existing staging location,
// decoupled from the build that produced it.
func (c *DescribeCmd) Run(ctx context.Context) error {
	artifacts, err := recipe.Describe(c.Staging)
	if err != nil {
		return err
	}

	for _, name := range artifacts {
		fmt.Println(name)
	}

	return nil
}
