package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the accepted categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range core.Categories() {
			fmt.Println(c)
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
