package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillbook/pkg/presenter"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a skill from the library",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(cmd.Context())
		if err != nil {
			return err
		}

		sk, ok := lib.GetByID(args[0])
		if !ok {
			return errors.Errorf("skill %q not found", args[0])
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			answer := presenter.Prompt(fmt.Sprintf("Delete %s?", sk.Path), "y", "N")
			if !strings.EqualFold(answer, "y") {
				presenter.Info("Aborted.")
				return nil
			}
		}

		if err := lib.Delete(cmd.Context(), sk.ID); err != nil {
			return err
		}
		presenter.Success(fmt.Sprintf("Deleted skill %q", sk.ID))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "delete without confirmation")
}
