package executor

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/skillbook/pkg/skill"
)

func blockSkill(commands ...string) *skill.Skill {
	sk := &skill.Skill{
		Metadata: skill.Metadata{Name: "test"},
		ID:       "skills/test",
	}
	for _, cmd := range commands {
		sk.Blocks = append(sk.Blocks, skill.ExecutionBlock{
			Command:   cmd,
			Variables: skill.Placeholders(cmd),
		})
	}
	return sk
}

func TestRunCapturesOutput(t *testing.T) {
	engine := New(WithOutput(io.Discard, io.Discard))
	sk := blockSkill("echo npm create vite {{target_dir}}")

	result, err := engine.Run(context.Background(), sk, 0, map[string]string{"target_dir": "apps/web"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.False(t, result.Interrupted)
	assert.Equal(t, "npm create vite apps/web\n", string(result.Stdout))
	assert.Empty(t, result.Stderr)
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestRunStreamsWhileCapturing(t *testing.T) {
	var stream bytes.Buffer
	engine := New(WithOutput(&stream, io.Discard))
	sk := blockSkill("echo hello")

	result, err := engine.Run(context.Background(), sk, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, "hello\n", stream.String())
	assert.Equal(t, "hello\n", string(result.Stdout))
}

func TestRunSeparatesStderr(t *testing.T) {
	engine := New(WithOutput(io.Discard, io.Discard))
	sk := blockSkill("echo out; echo err >&2")

	result, err := engine.Run(context.Background(), sk, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, "out\n", string(result.Stdout))
	assert.Equal(t, "err\n", string(result.Stderr))
}

func TestRunNonZeroExitIsData(t *testing.T) {
	engine := New(WithOutput(io.Discard, io.Discard))
	sk := blockSkill("exit 3")

	result, err := engine.Run(context.Background(), sk, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.ExitCode)
	assert.False(t, result.Interrupted)
}

func TestRunWorkDir(t *testing.T) {
	dir := t.TempDir()
	engine := New(WithOutput(io.Discard, io.Discard), WithWorkDir(dir))
	sk := blockSkill("touch created.txt")

	result, err := engine.Run(context.Background(), sk, 0, nil)
	require.NoError(t, err)
	require.Equal(t, 0, result.ExitCode)

	_, err = os.Stat(filepath.Join(dir, "created.txt"))
	assert.NoError(t, err)
}

func TestRunNoSuchBlock(t *testing.T) {
	engine := New(WithOutput(io.Discard, io.Discard))
	sk := blockSkill("echo only one")

	for _, index := range []int{-1, 1, 5} {
		_, err := engine.Run(context.Background(), sk, index, nil)
		require.Error(t, err)

		var noBlock *NoSuchBlockError
		require.ErrorAs(t, err, &noBlock)
		assert.Equal(t, index, noBlock.Index)
		assert.Equal(t, 1, noBlock.Blocks)
	}
}

func TestRunUnboundVariable(t *testing.T) {
	engine := New(WithOutput(io.Discard, io.Discard))
	sk := blockSkill("echo {{target_dir}}")

	_, err := engine.Run(context.Background(), sk, 0, nil)
	require.Error(t, err)

	var unbound *skill.UnboundVariableError
	assert.ErrorAs(t, err, &unbound)
}

func TestRunInterrupted(t *testing.T) {
	engine := New(WithOutput(io.Discard, io.Discard))
	sk := blockSkill("sleep 30")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	result, err := engine.Run(ctx, sk, 0, nil)
	require.NoError(t, err)

	assert.True(t, result.Interrupted)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestRender(t *testing.T) {
	engine := New(WithOutput(io.Discard, io.Discard))
	sk := blockSkill("deploy {{env}}", "rollback {{env}}")

	out, err := engine.Render(sk, 1, map[string]string{"env": "prod"})
	require.NoError(t, err)
	assert.Equal(t, "rollback prod", out)

	_, err = engine.Render(sk, 2, nil)
	var noBlock *NoSuchBlockError
	assert.ErrorAs(t, err, &noBlock)
}
