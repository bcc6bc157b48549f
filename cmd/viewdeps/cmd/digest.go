package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var digestCmd = &cobra.Command{
	Use:   "digest <template>",
	Short: "Print a template's recursive content digest",
	Long: `Scans the views root and prints the template's digest: a hash of its own
source plus the digests of everything it transitively renders. Editing any
partial in the tree changes the digest.`,
	Args: cobra.ExactArgs(1),
	RunE: runDigest,
}

func runDigest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.Scan(); err != nil {
		return err
	}

	dig, ok := a.Digest(args[0])
	if !ok {
		return fmt.Errorf("unknown template %q", args[0])
	}
	fmt.Println(dig)
	return nil
}
