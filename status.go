package tachywind

import (
	"context"
	"fmt"
)

// Status summarizes the registry and lists the used classes still lacking a replacement.
func Status(ctx context.Context, reg Registry) (*StatusResult, error) {
	all, err := reg.Classes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading classes: %w", err)
	}
	files, err := reg.Files(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading files: %w", err)
	}

	status := &StatusResult{
		Classes: len(all),
		Files:   len(files),
	}
	for _, c := range all {
		if c.Mapped() {
			status.Mapped++
		}
		if c.Used {
			status.Used++
			if !c.Mapped() {
				status.Unmapped = append(status.Unmapped, c.Name)
			}
		}
	}

	return status, nil
}
