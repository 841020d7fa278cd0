package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	jotlifecycle "github.com/aretw0/jotter/pkg/adapters/lifecycle"
	"github.com/aretw0/jotter/pkg/app"
	"github.com/aretw0/jotter/pkg/render"
)

var (
	watchSearch   string
	watchCategory string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Redraw the list whenever another process changes the notes",
	Long: `Watch prints the filtered list, then redraws it every time the slot
file changes. Only the fs adapter supports watching.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()
		defer svc.Close()

		ctrl := app.NewController(svc, app.WithRenderOptions(renderOptions(cfg)...))
		ctrl.SetSearch(watchSearch)
		if err := ctrl.SetCategory(watchCategory); err != nil {
			fatal("filtering notes", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := svc.Watch(ctx)
		if err != nil {
			fatal("watching notes", err)
		}

		redraw := func() {
			view, err := ctrl.View(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error listing notes: %v\n", err)
				return
			}
			// Clear screen, cursor home.
			fmt.Print("\033[H\033[2J")
			_ = render.Text(os.Stdout, view)
		}

		src := jotlifecycle.NewSource(events, jotlifecycle.WithSlots(cfg.Store.Slot))
		if err := src.Start(ctx); err != nil {
			fatal("watching notes", err)
		}

		redraw()
		for e := range src.Events() {
			slog.Debug("redrawing", "event", e.String())
			redraw()
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchSearch, "search", "s", "", "Case-insensitive search in text and category")
	watchCmd.Flags().StringVarP(&watchCategory, "category", "c", "", "Only this category (or \"all\")")
}
