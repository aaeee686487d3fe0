package store

import (
	"github.com/spf13/cobra"
)

var StoreCommand = &cobra.Command{
	Use:   "inkstone",
	Short: "Manage the Inkstone content store",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}
