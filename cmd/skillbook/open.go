package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Resolve a skill id to its file path",
	Long: `Print the file path of a skill. With --edit the file is opened in an
editor: 'code' when available, otherwise $EDITOR.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(cmd.Context())
		if err != nil {
			return err
		}

		sk, ok := lib.GetByID(args[0])
		if !ok {
			return errors.Errorf("skill %q not found, try 'skillbook search'", args[0])
		}

		edit, _ := cmd.Flags().GetBool("edit")
		if !edit {
			fmt.Println(sk.Path)
			return nil
		}

		editor := os.Getenv("EDITOR")
		if _, err := exec.LookPath("code"); err == nil {
			editor = "code"
		}
		if editor == "" {
			return errors.New("no editor found: install 'code' or set $EDITOR")
		}

		editorCmd := exec.CommandContext(cmd.Context(), editor, sk.Path)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr
		return errors.Wrapf(editorCmd.Run(), "failed to open %s", sk.Path)
	},
}

func init() {
	openCmd.Flags().BoolP("edit", "e", false, "open the skill file in an editor")
}
