package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/app"
	"github.com/aretw0/jotter/pkg/summarize"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [id]",
	Short: "Summarize a note with AI",
	Long: `Summarize sends the note text to the configured completion service
(summarizer.api_key / OPENAI_API_KEY) or to a jotter server (summarizer.remote).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()
		defer svc.Close()

		ctrl := app.NewController(svc, app.WithSummarizer(newGateway(cfg)))
		res, err := ctrl.Summarize(context.Background(), parseID(args[0]))
		if errors.Is(err, summarize.ErrConfiguration) {
			fatal("summarizing note", fmt.Errorf("%w: set JOTTER_SUMMARIZER_API_KEY, OPENAI_API_KEY or summarizer.remote", err))
		}
		if err != nil {
			fatal("summarizing note", err)
		}

		fmt.Println(res.Text)
		if res.Failed {
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}
