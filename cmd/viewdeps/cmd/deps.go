package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps <view>",
	Short: "Print a view's direct render dependencies",
	Long: `Prints the virtual path of every template the view statically renders,
in source order, duplicates included. The view may be a file path or a
logical template name like "posts/index".`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func runDeps(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	arg := args[0]
	if _, statErr := os.Stat(arg); statErr == nil {
		_, deps, err := a.ExtractView(arg)
		if err != nil {
			return err
		}
		printDeps(deps)
		return nil
	}

	// Logical name: try the candidate file extensions under the views root.
	for _, ext := range []string{".html.erb", ".erb", ".html"} {
		path := filepath.Join(a.ProjectRoot, a.ViewsRoot, arg+ext)
		if _, statErr := os.Stat(path); statErr == nil {
			_, deps, err := a.ExtractView(path)
			if err != nil {
				return err
			}
			printDeps(deps)
			return nil
		}
	}
	return fmt.Errorf("no view found for %q", arg)
}

func printDeps(deps []string) {
	for _, dep := range deps {
		fmt.Println(dep)
	}
}
