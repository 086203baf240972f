package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillbook/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of skillbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		short, _ := cmd.Flags().GetBool("short")
		jsonOut, _ := cmd.Flags().GetBool("json")

		info := version.Get()
		switch {
		case short:
			fmt.Println(info.Version)
		case jsonOut:
			out, err := info.JSON()
			if err != nil {
				return err
			}
			fmt.Println(out)
		default:
			fmt.Println(info.String())
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version number")
	versionCmd.Flags().Bool("json", false, "print version information as JSON")
}
