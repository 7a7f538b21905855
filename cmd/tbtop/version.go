package main

import (
	"fmt"

	"github.com/tbtop/tbtop/internal/ui/panels"
	"github.com/tbtop/tbtop/internal/update"
)

func runVersion() {
	fmt.Printf("tbtop version %s\n", panels.Version)

	if panels.Version == "dev" {
		fmt.Println("Development build — update check skipped.")
		return
	}

	rel, err := update.Check(panels.Version)
	if err != nil {
		fmt.Printf("Update check failed: %v\n", err)
		return
	}

	if rel != nil {
		fmt.Printf("Update available: v%s. Run \"tbtop update\" to install.\n", rel.Version)
	} else {
		fmt.Println("You are up to date.")
	}
}
