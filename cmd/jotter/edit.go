package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/pkg/app"
)

var (
	editText     string
	editCategory string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note in place",
	Long: `Edit replaces the text and/or category of a note. The note keeps its id
and its position in the list; only its timestamp is refreshed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()
		defer svc.Close()

		ctrl := app.NewController(svc)
		ctx := context.Background()
		current, err := ctrl.BeginEdit(ctx, parseID(args[0]))
		if err != nil {
			fatal("reading note", err)
		}

		// Unset flags keep the current values, like a prefilled form.
		text, category := current.Text, current.Category
		if cmd.Flags().Changed("text") {
			text = editText
		}
		if cmd.Flags().Changed("category") {
			category = editCategory
		}
		if strings.TrimSpace(text) == "" {
			ctrl.CancelEdit()
			fatal("editing note", fmt.Errorf("text cannot be empty"))
		}

		note, _, err := ctrl.Submit(withReason(ctx, jotter.CommitTypeFix, fmt.Sprintf("edit note %d", current.ID)), text, category)
		if err != nil {
			fatal("editing note", err)
		}
		fmt.Printf("Note %d updated.\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editText, "text", "t", "", "New text")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category")
}
