package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete the stored dependency index for this project",
	Args:  cobra.NoArgs,
	RunE:  runWipe,
}

func runWipe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Wipe(); err != nil {
		return err
	}
	fmt.Println("index wiped")
	return nil
}
