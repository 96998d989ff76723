package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	iprescue "github.com/Ernest-Sab/IPR-Tool"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of iprescue",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("iprescue version %s\n", strings.TrimSpace(iprescue.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
