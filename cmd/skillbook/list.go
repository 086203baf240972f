package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillbook/pkg/presenter"
	"github.com/jingkaihe/skillbook/pkg/skill"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all skills in the library",
	RunE: func(cmd *cobra.Command, _ []string) error {
		lib, err := loadLibrary(cmd.Context())
		if err != nil {
			return err
		}

		skills := lib.All()
		if len(skills) == 0 {
			presenter.Info("No skills harvested yet. Use 'skillbook harvest' to add one.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tGRADE\tEXEC\tDESCRIPTION")
		fmt.Fprintln(tw, "--\t----\t-----\t----\t-----------")
		for _, sk := range skills {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				sk.ID, sk.Name, gradeLabel(sk.Grade), len(sk.Blocks), truncate(sk.Description, 60))
		}
		return tw.Flush()
	},
}

func gradeLabel(g skill.Grade) string {
	if g == skill.Ungraded {
		return "-"
	}
	return string(g)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
