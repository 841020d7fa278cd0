package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/app"
	"github.com/aretw0/jotter/pkg/render"
)

var (
	listSearch   string
	listCategory string
	listFormat   string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes, newest first",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()
		defer svc.Close()

		ctrl := app.NewController(svc, app.WithRenderOptions(renderOptions(cfg)...))
		ctrl.SetSearch(listSearch)
		if err := ctrl.SetCategory(listCategory); err != nil {
			fatal("filtering notes", err)
		}

		view, err := ctrl.View(context.Background())
		if err != nil {
			fatal("listing notes", err)
		}
		if err := render.Encode(os.Stdout, view, listFormat); err != nil {
			fatal("rendering notes", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive search in text and category")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only this category (or \"all\")")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", render.FormatText, "Output format (text, json, yaml, html)")
}
