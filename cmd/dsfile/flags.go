package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func validateApplyOptions(opts applyOptions) error {
	if strings.TrimSpace(opts.Params.Path) == "" {
		return fmt.Errorf("a datastore path is required")
	}

	if opts.ProfilePath == "" {
		return nil
	}

	abs, err := filepath.Abs(opts.ProfilePath)
	if err != nil {
		return fmt.Errorf("resolve profile path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("profile file does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("profile path %s is a directory", abs)
	}

	return nil
}
