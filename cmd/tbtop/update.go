package main

import (
	"fmt"

	"github.com/tbtop/tbtop/internal/ui/panels"
	"github.com/tbtop/tbtop/internal/update"
)

func runUpdate() error {
	fmt.Printf("tbtop version %s\n", panels.Version)

	rel, err := update.Check(panels.Version)
	if err != nil {
		return fmt.Errorf("update check: %w", err)
	}
	if rel == nil {
		fmt.Println("You are up to date.")
		return nil
	}

	fmt.Printf("Updating to v%s...\n", rel.Version)
	applied, err := update.Apply(panels.Version)
	if err != nil {
		return err
	}
	fmt.Printf("Updated to v%s.\n", applied.Version)
	return nil
}
