package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillbook/pkg/executor"
	"github.com/jingkaihe/skillbook/pkg/presenter"
)

// interruptedExitCode follows the shell convention of 128+SIGINT.
const interruptedExitCode = 130

var execCmd = &cobra.Command{
	Use:     "exec <id>",
	Aliases: []string{"apply"},
	Short:   "Execute a skill's execution block",
	Long: `Render a skill's execution block with the supplied variable bindings and
run it through bash, streaming output as it arrives. Bindings must cover
exactly the block's declared {{variable}} placeholders. The command's own
exit code is passed through.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		blockIndex, _ := cmd.Flags().GetInt("block")
		bindings, _ := cmd.Flags().GetStringToString("var")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			<-sigCh
			presenter.Warning("Cancellation requested, terminating command...")
			cancel()
		}()

		lib, err := loadLibrary(ctx)
		if err != nil {
			presenter.Error(err, "Failed to load library")
			os.Exit(engineErrorExitCode)
		}

		sk, ok := lib.GetByID(args[0])
		if !ok {
			presenter.Error(fmt.Errorf("skill %q not found", args[0]), "")
			os.Exit(engineErrorExitCode)
		}

		engine := executor.New()

		if dryRun {
			rendered, err := engine.Render(sk, blockIndex, bindings)
			if err != nil {
				presenter.Error(err, "Failed to render execution block")
				os.Exit(engineErrorExitCode)
			}
			presenter.Section(fmt.Sprintf("Dry run: %s block %d", sk.ID, blockIndex))
			fmt.Println(rendered)
			return
		}

		result, err := engine.Run(ctx, sk, blockIndex, bindings)
		if err != nil {
			presenter.Error(err, "Execution failed")
			os.Exit(engineErrorExitCode)
		}

		os.Exit(exitCodeFor(result))
	},
}

func init() {
	execCmd.Flags().Int("block", 0, "index of the execution block to run")
	execCmd.Flags().StringToString("var", nil, "template variable binding, repeatable (name=value)")
	execCmd.Flags().Bool("dry-run", false, "render the command without running it")
}

// exitCodeFor maps an execution result onto the CLI exit status: the
// command's own exit code, or 130 when the run was interrupted.
func exitCodeFor(result *executor.Result) int {
	if result.Interrupted {
		return interruptedExitCode
	}
	return result.ExitCode
}
