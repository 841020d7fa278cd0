package main

import (
	"encoding/json"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the service and store state as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()
		defer svc.Close()

		state := map[string]any{
			"data_path": effectiveDataPath(cfg),
			"service":   svc.State(),
		}
		if st, ok := svc.Store().(introspection.Introspectable); ok {
			state["store"] = st.State()
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fatal("encoding state", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
