package manim

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenesmith/scenesmith/config"
	"github.com/scenesmith/scenesmith/internal/core"
	"github.com/scenesmith/scenesmith/internal/domain/model"
)

// writeStub writes an executable shell script standing in for the renderer.
func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-manim")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func testRenderConfig(binary string) config.RenderConfig {
	return config.RenderConfig{
		Binary:     binary,
		Timeout:    10 * time.Second,
		Quality:    "h",
		Format:     "mp4",
		OutputFlag: "--media_dir",
	}
}

func TestRunner_Success(t *testing.T) {
	// $2 is the scene name, $6 the scratch directory handed to --media_dir.
	stub := writeStub(t, `mkdir -p "$6/videos"
printf data > "$6/videos/$2.mp4"
echo rendered
`)
	scratch := t.TempDir()
	runner := NewRunner(testRenderConfig(stub), nil)

	result, err := runner.Run(context.Background(), core.RunRequest{
		JobID:      "job1",
		SourceText: "print('hi')",
		SceneName:  "Spin",
		Quality:    "h",
		ScratchDir: scratch,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ExecOutcomeSuccess, result.Outcome)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "rendered")
	assert.FileExists(t, filepath.Join(scratch, "videos", "Spin.mp4"))

	_, statErr := os.Stat(filepath.Join(scratch, "scene_job1.py"))
	assert.True(t, os.IsNotExist(statErr), "transient source file should be removed")
}

func TestRunner_ProcessError(t *testing.T) {
	stub := writeStub(t, `echo boom >&2
exit 3
`)
	scratch := t.TempDir()
	runner := NewRunner(testRenderConfig(stub), nil)

	result, err := runner.Run(context.Background(), core.RunRequest{
		JobID:      "job2",
		SourceText: "broken",
		SceneName:  "Spin",
		ScratchDir: scratch,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ExecOutcomeProcessError, result.Outcome)
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.Stderr, "boom")

	_, statErr := os.Stat(filepath.Join(scratch, "scene_job2.py"))
	assert.True(t, os.IsNotExist(statErr), "transient source file should be removed")
}

func TestRunner_Timeout(t *testing.T) {
	stub := writeStub(t, `sleep 5
`)
	scratch := t.TempDir()
	cfg := testRenderConfig(stub)
	cfg.Timeout = 300 * time.Millisecond
	runner := NewRunner(cfg, nil)

	result, err := runner.Run(context.Background(), core.RunRequest{
		JobID:      "job3",
		SourceText: "slow",
		SceneName:  "Spin",
		ScratchDir: scratch,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ExecOutcomeTimeout, result.Outcome)
	assert.GreaterOrEqual(t, result.Duration, cfg.Timeout,
		"timeout must not fire before the configured bound")

	_, statErr := os.Stat(filepath.Join(scratch, "scene_job3.py"))
	assert.True(t, os.IsNotExist(statErr), "transient source file should be removed")
}

func TestRunner_CallerCanceled(t *testing.T) {
	stub := writeStub(t, `sleep 5
`)
	scratch := t.TempDir()
	runner := NewRunner(testRenderConfig(stub), nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	result, err := runner.Run(ctx, core.RunRequest{
		JobID:      "job4",
		SourceText: "slow",
		SceneName:  "Spin",
		ScratchDir: scratch,
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestRunner_BinaryMissing(t *testing.T) {
	cfg := testRenderConfig(filepath.Join(t.TempDir(), "does-not-exist"))
	scratch := t.TempDir()
	runner := NewRunner(cfg, nil)

	result, err := runner.Run(context.Background(), core.RunRequest{
		JobID:      "job5",
		SourceText: "x",
		SceneName:  "Spin",
		ScratchDir: scratch,
	})
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestRunner_ArgumentOrder(t *testing.T) {
	// The stub records its arguments; the working directory is the scratch dir.
	stub := writeStub(t, `printf '%s\n' "$@" > args.txt
`)
	scratch := t.TempDir()
	runner := NewRunner(testRenderConfig(stub), nil)

	_, err := runner.Run(context.Background(), core.RunRequest{
		JobID:      "job6",
		SourceText: "x",
		SceneName:  "Spin",
		Quality:    "k",
		ScratchDir: scratch,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(scratch, "args.txt"))
	require.NoError(t, err)

	args := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, args, 6)
	assert.Equal(t, filepath.Join(scratch, "scene_job6.py"), args[0])
	assert.Equal(t, "Spin", args[1])
	assert.Equal(t, "-qk", args[2])
	assert.Equal(t, "--format=mp4", args[3])
	assert.Equal(t, "--media_dir", args[4])
	assert.Equal(t, scratch, args[5])
}

func TestRunner_NoOutputFlag(t *testing.T) {
	stub := writeStub(t, `printf '%s\n' "$@" > args.txt
`)
	scratch := t.TempDir()
	cfg := testRenderConfig(stub)
	cfg.OutputFlag = ""
	runner := NewRunner(cfg, nil)

	_, err := runner.Run(context.Background(), core.RunRequest{
		JobID:      "job7",
		SourceText: "x",
		SceneName:  "Spin",
		ScratchDir: scratch,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(scratch, "args.txt"))
	require.NoError(t, err)

	args := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, args, 4, "no output flag args when isolation is disabled")
	assert.Equal(t, "-qh", args[2], "falls back to the configured quality")
}

func TestTailBuffer_KeepsTail(t *testing.T) {
	buf := newTailBuffer(8)

	_, err := buf.Write([]byte("0123456789abcdef"))
	require.NoError(t, err)
	assert.Equal(t, "89abcdef", buf.String())

	_, err = buf.Write([]byte("XY"))
	require.NoError(t, err)
	assert.Equal(t, "abcdefXY", buf.String())
}
