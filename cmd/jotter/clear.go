package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every note from the slot",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !clearYes && !confirm(os.Stdin, os.Stdout, "Clear all notes?") {
			fmt.Println("Aborted.")
			return
		}

		svc := openService()
		defer svc.Close()

		if err := svc.Clear(withReason(context.Background(), jotter.CommitTypeChore, "clear notes")); err != nil {
			fatal("clearing notes", err)
		}
		fmt.Println("All notes removed.")
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")
}
