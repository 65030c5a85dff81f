package main

import (
	"fmt"

	"github.com/yacobolo/tachywind"
)

// openRegistry opens the configured registry. Callers close it.
func openRegistry() (tachywind.Registry, error) {
	path := registryPath()
	reg, err := tachywind.OpenRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("opening registry %s: %w", path, err)
	}
	return reg, nil
}
