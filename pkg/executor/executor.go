// Package executor runs a skill's rendered execution block as an external
// process, streaming output to the caller as it arrives and capturing the
// exit status. The engine runs the command faithfully: it does not retry,
// does not time out by default, and reports a non-zero exit code as data
// rather than as an error.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jingkaihe/skillbook/pkg/logger"
	"github.com/jingkaihe/skillbook/pkg/skill"
)

// waitDelay bounds how long Wait blocks on lingering pipe readers after
// the process group has been killed on cancellation.
const waitDelay = 5 * time.Second

// Result is the outcome of one execution block run. It is owned by the
// caller and never persisted.
type Result struct {
	ExitCode    int
	Stdout      []byte
	Stderr      []byte
	Duration    time.Duration
	Interrupted bool // the run was cancelled before natural termination
}

// NoSuchBlockError indicates a block index outside the skill's execution
// block range.
type NoSuchBlockError struct {
	SkillID string
	Index   int
	Blocks  int
}

func (e *NoSuchBlockError) Error() string {
	return fmt.Sprintf("skill %q has no execution block %d (%d available)", e.SkillID, e.Index, e.Blocks)
}

// Engine spawns execution blocks as bash subprocesses.
type Engine struct {
	stdout io.Writer
	stderr io.Writer
	dir    string
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput sets the writers that receive the subprocess output as it is
// produced. Output is additionally captured into the Result.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Engine) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithWorkDir sets the working directory for spawned commands.
func WithWorkDir(dir string) Option {
	return func(e *Engine) {
		e.dir = dir
	}
}

// New creates an Engine that streams to the process's stdout and stderr
// unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render validates the block index and renders the block's command text
// with the given bindings, without spawning anything. Run uses it before
// execution; callers use it directly for dry runs.
func (e *Engine) Render(sk *skill.Skill, blockIndex int, bindings map[string]string) (string, error) {
	if blockIndex < 0 || blockIndex >= len(sk.Blocks) {
		return "", &NoSuchBlockError{SkillID: sk.ID, Index: blockIndex, Blocks: len(sk.Blocks)}
	}
	return skill.Render(sk.Blocks[blockIndex].Command, bindings)
}

// Run renders the indexed execution block and invokes it as a single bash
// command line. Output streams to the engine's writers while the process
// runs. Render failures surface before any process is spawned. When ctx
// is cancelled mid-run the process group is killed and the result carries
// Interrupted instead of a meaningful exit code.
func (e *Engine) Run(ctx context.Context, sk *skill.Skill, blockIndex int, bindings map[string]string) (*Result, error) {
	rendered, err := e.Render(sk, blockIndex, bindings)
	if err != nil {
		return nil, err
	}

	log := logger.G(ctx).WithFields(logrus.Fields{
		"skill": sk.ID,
		"block": blockIndex,
	})
	log.Debug("executing skill block")

	cmd := exec.CommandContext(ctx, "bash", "-c", rendered)
	cmd.Dir = e.dir
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)
	setProcessGroupKill(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create stderr pipe")
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "failed to start command")
	}

	var outBuf, errBuf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		io.Copy(io.MultiWriter(&outBuf, e.stdout), stdout)
	}()
	go func() {
		defer wg.Done()
		io.Copy(io.MultiWriter(&errBuf, e.stderr), stderr)
	}()
	wg.Wait()

	waitErr := cmd.Wait()

	result := &Result{
		Stdout:   outBuf.Bytes(),
		Stderr:   errBuf.Bytes(),
		Duration: time.Since(start),
	}

	if ctx.Err() != nil {
		log.Warn("execution interrupted")
		result.Interrupted = true
		result.ExitCode = -1
		return result, nil
	}

	if waitErr != nil {
		exitErr, ok := waitErr.(*exec.ExitError)
		if !ok {
			return nil, errors.Wrap(waitErr, "command failed to run")
		}
		result.ExitCode = exitErr.ExitCode()
	}

	log.WithFields(logrus.Fields{
		"exit_code": result.ExitCode,
		"duration":  result.Duration,
	}).Debug("execution finished")

	return result, nil
}
