package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the full template dependency graph as an edge list",
	Args:  cobra.NoArgs,
	RunE:  runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.Scan(); err != nil {
		return err
	}

	for _, edge := range a.Graph() {
		fmt.Printf("%s -> %s\n", edge.From, edge.To)
	}
	return nil
}
