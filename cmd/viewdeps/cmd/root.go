package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Matt-Yorkley/viewdeps/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "viewdeps",
	Short: "Static render-dependency extractor for ERB views",
	Long:  "Finds every template a view renders, builds the dependency graph, and tracks recursive cache digests.",
}

var flagViews string

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// newApp wires an App for the current project.
func newApp() (*app.App, error) {
	return app.New(app.Config{
		ProjectRoot: projectRoot(),
		ViewsRoot:   flagViews,
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagViews, "views",
		filepath.Join("app", "views"), "views directory, relative to the project root")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(wipeCmd)
}
