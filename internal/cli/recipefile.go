package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quarryhq/quarry/internal/recipe"
)

// Reads a recipe file into a descriptor.
//
// Recipe files are JSON documents carrying the package's static identity:
//
//	{
//	    "name": "zlib",
//	    "version": "v1.3.1",
//	    "license": "Zlib",
//	    "url": "https://github.com/madler/zlib",
//	    "description": "A massively spiffy yet delicately unobtrusive compression library",
//	    "settings": {"build_type": "Release"}
//	}
func loadRecipe(path string) (recipe.Descriptor, error) {
	var desc recipe.Descriptor

	data, err := os.ReadFile(path)
	if err != nil {
		return desc, fmt.Errorf("reading recipe: %w", err)
	}

	if err := json.Unmarshal(data, &desc); err != nil {
		return desc, fmt.Errorf("parsing recipe %s: %w", path, err)
	}

	return desc, nil
}
