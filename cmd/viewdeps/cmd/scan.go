package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Extract dependencies for every view and persist the index",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Scan()
	if err != nil {
		return err
	}
	fmt.Printf("%d templates, %d dependency edges (%d unchanged)\n",
		result.TemplateCount, result.DepCount, result.Reused)
	return nil
}
