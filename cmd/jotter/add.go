package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
)

var addCategory string

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()
		defer svc.Close()

		text := strings.Join(args, " ")
		ctx := withReason(context.Background(), jotter.CommitTypeFeat, "add note")
		note, err := svc.Create(ctx, text, addCategory)
		if err != nil {
			fatal("adding note", err)
		}
		fmt.Printf("Note %d added.\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category (personal, work, ideas, todo, other)")
}
