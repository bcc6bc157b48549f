package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the views root and report digest changes as views are edited",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Scan()
	if err != nil {
		return err
	}
	fmt.Printf("watching %s (%d templates)\n", a.ViewsRoot, result.TemplateCount)

	err = a.WatchViews(func(names []string) {
		for _, name := range names {
			dig, _ := a.Digest(name)
			if dig == "" {
				fmt.Printf("gone     %s\n", name)
				continue
			}
			fmt.Printf("changed  %s  %s\n", name, dig[:12])
		}
	})
	if err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	return nil
}
