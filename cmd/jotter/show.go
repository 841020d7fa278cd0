package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/render"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a single note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()
		defer svc.Close()

		note, err := svc.FindByID(context.Background(), parseID(args[0]))
		if err != nil {
			fatal("reading note", err)
		}
		view := render.Render([]core.Note{note}, renderOptions(cfg)...)
		if err := render.Encode(os.Stdout, view, showFormat); err != nil {
			fatal("rendering note", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showFormat, "format", "f", render.FormatText, "Output format (text, json, yaml, html)")
}
