package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillbook/pkg/library"
	"github.com/jingkaihe/skillbook/pkg/presenter"
	"github.com/jingkaihe/skillbook/pkg/skill"
)

var harvestCmd = &cobra.Command{
	Use:     "harvest",
	Aliases: []string{"new"},
	Short:   "Author a new skill and add it to the library",
	Long: `Record a new skill in the library. Fields not supplied as flags are asked
for interactively. The execution plan is read from --exec-file ('-' for
stdin); without one the skill is documentation-only.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, err := harvestInputFromFlags(cmd)
		if err != nil {
			return err
		}

		lib, err := loadLibrary(cmd.Context())
		if err != nil {
			return err
		}

		sk, err := lib.Harvest(cmd.Context(), input)
		if err != nil {
			return err
		}

		presenter.Success(fmt.Sprintf("Harvested skill %q as %s", sk.Name, sk.ID))
		presenter.Info(fmt.Sprintf("Location: %s", sk.Path))
		return nil
	},
}

func init() {
	harvestCmd.Flags().String("name", "", "skill name (prompted for when omitted)")
	harvestCmd.Flags().String("description", "", "short summary of the skill")
	harvestCmd.Flags().String("grade", "", "quality tier: A, B or C")
	harvestCmd.Flags().StringSlice("tags", nil, "comma-separated tags")
	harvestCmd.Flags().StringSlice("pros", nil, "comma-separated pros")
	harvestCmd.Flags().StringSlice("cons", nil, "comma-separated cons")
	harvestCmd.Flags().String("exec-file", "", "file with the bash execution plan, '-' reads stdin")
}

func harvestInputFromFlags(cmd *cobra.Command) (library.HarvestInput, error) {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	grade, _ := cmd.Flags().GetString("grade")
	tags, _ := cmd.Flags().GetStringSlice("tags")
	pros, _ := cmd.Flags().GetStringSlice("pros")
	cons, _ := cmd.Flags().GetStringSlice("cons")
	execFile, _ := cmd.Flags().GetString("exec-file")

	if name == "" {
		name = presenter.Prompt("What is the name of this skill? (e.g. 'glass-card')")
	}
	if name == "" {
		return library.HarvestInput{}, errors.New("skill name is required")
	}
	if description == "" {
		description = presenter.Prompt("Description (short summary)")
	}
	if grade == "" {
		grade = presenter.Prompt("Grade", "A", "B", "C")
	}

	var execText string
	switch execFile {
	case "":
	case "-":
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return library.HarvestInput{}, errors.Wrap(err, "failed to read execution plan from stdin")
		}
		execText = string(content)
	default:
		content, err := os.ReadFile(execFile)
		if err != nil {
			return library.HarvestInput{}, errors.Wrap(err, "failed to read execution plan file")
		}
		execText = string(content)
	}

	return library.HarvestInput{
		Name:        name,
		Description: description,
		Grade:       skill.Grade(strings.ToUpper(strings.TrimSpace(grade))),
		Tags:        tags,
		Pros:        pros,
		Cons:        cons,
		ExecText:    execText,
	}, nil
}
