package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillbook/pkg/presenter"
	"github.com/jingkaihe/skillbook/pkg/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "Search skills by keyword",
	Long: `Search the library by keyword. The query is a conjunction of tokens: a
skill is returned only if every token appears in its name, description,
tags or body. Exact name matches rank first, tag matches second.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(cmd.Context())
		if err != nil {
			return err
		}

		term := strings.Join(args, " ")
		results := search.Build(lib.All()).Query(term)
		if len(results) == 0 {
			presenter.Info(fmt.Sprintf("No skills matching %q", term))
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tGRADE\tDESCRIPTION")
		fmt.Fprintln(tw, "--\t----\t-----\t-----------")
		for _, sk := range results {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				sk.ID, sk.Name, gradeLabel(sk.Grade), truncate(sk.Description, 60))
		}
		return tw.Flush()
	},
}
