package cli

import (
	"context"
	"fmt"

	"github.com/quarryhq/quarry/internal"
)

// Represents the 'quarry version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.VersionString())
	return nil
}
