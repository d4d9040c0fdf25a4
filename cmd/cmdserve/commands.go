package main

import (
	"fmt"

	"cmdserve/registry"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the commands the server recognizes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range registry.Beacon().Commands() {
			fmt.Println(name)
		}
	},
}
