package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])
		if !deleteYes && !confirm(os.Stdin, os.Stdout, confirmPrompt(cfg.Display.Locale)) {
			fmt.Println("Aborted.")
			return
		}

		svc := openService()
		defer svc.Close()

		ctx := withReason(context.Background(), jotter.CommitTypeChore, fmt.Sprintf("delete note %d", id))
		removed, err := svc.Remove(ctx, id)
		if err != nil {
			fatal("deleting note", err)
		}
		if !removed {
			fmt.Printf("Note %d not found; nothing deleted.\n", id)
			return
		}
		fmt.Printf("Note %d deleted.\n", id)
	},
}

func confirmPrompt(locale string) string {
	if locale == "en" {
		return "Delete this note?"
	}
	return "Yakin ingin menghapus catatan ini?"
}

// confirm asks a yes/no question and accepts y, yes, ya.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "ya":
		return true
	}
	return false
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
