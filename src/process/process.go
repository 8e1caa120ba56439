// Package process supervises the spawned game runtime: it starts the
// binary, multiplexes its stdout/stderr to caller callbacks in fixed-size
// chunks, and honours a one-shot cancellation signal that kills the child.
package process

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/voxforge/launcher-core/src/mcerr"
)

// windowsKilledExitCode is the sentinel Windows reports when a process is
// forcibly terminated (0xC0000409 as a signed 32-bit int); treated as a successful supervised exit alongside 0.
const windowsKilledExitCode = -1073740791

const chunkSize = 1024

// Child wraps a spawned runtime process.
type Child struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser
}

// Execute validates that binPath exists, then spawns it with args in cwd,
// with stdout/stderr piped for HandleIO to consume.
func Execute(ctx context.Context, binPath string, args []string, cwd string) (*Child, error) {
	if _, err := os.Stat(binPath); err != nil {
		return nil, mcerr.RuntimeBinaryMissing(binPath)
	}

	cmd := exec.CommandContext(ctx, binPath, args...)
	cmd.Dir = cwd

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("attach stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("attach stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", binPath, err)
	}

	return &Child{cmd: cmd, stdout: stdout, stderr: stderr}, nil
}

// OutputFunc receives a raw chunk of child output; decoding is the
// caller's concern.
type OutputFunc func(chunk []byte)

// HandleIO pumps stdout/stderr to onStdout/onStderr in chunkSize-byte
// chunks until the child exits or terminator fires, at which point the
// child is killed and HandleIO returns. Exit code 0 and the Windows killed
// sentinel are treated as success; anything else is NonZeroExit.
func HandleIO(c *Child, onStdout, onStderr OutputFunc, terminator <-chan struct{}) error {
	stdoutCh := pumpChunks(c.stdout)
	stderrCh := pumpChunks(c.stderr)
	// Wait closes both pipes, so it is only started once both have been
	// read to EOF; starting it earlier can drop output still in the pipes.
	exitCh := make(chan error, 1)
	waiting := false

	for {
		if !waiting && stdoutCh == nil && stderrCh == nil {
			waiting = true
			go func() { exitCh <- c.cmd.Wait() }()
		}
		select {
		case chunk, ok := <-stdoutCh:
			if !ok {
				stdoutCh = nil
				continue
			}
			if onStdout != nil {
				onStdout(chunk)
			}
		case chunk, ok := <-stderrCh:
			if !ok {
				stderrCh = nil
				continue
			}
			if onStderr != nil {
				onStderr(chunk)
			}
		case <-terminator:
			c.cmd.Process.Kill()
			if waiting {
				<-exitCh
			} else {
				c.cmd.Wait()
			}
			return nil
		case err := <-exitCh:
			return classifyExit(err)
		}
	}
}

func classifyExit(waitErr error) error {
	if waitErr == nil {
		return nil
	}
	exitErr, ok := waitErr.(*exec.ExitError)
	if !ok {
		return fmt.Errorf("wait for child: %w", waitErr)
	}
	code := exitErr.ExitCode()
	if code == 0 || code == windowsKilledExitCode {
		return nil
	}
	return mcerr.NonZeroExit(code)
}

// pumpChunks reads r in chunkSize-byte pieces on its own goroutine,
// closing the returned channel when r is exhausted.
func pumpChunks(r io.Reader) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		br := bufio.NewReaderSize(r, chunkSize)
		buf := make([]byte, chunkSize)
		for {
			n, err := br.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				out <- chunk
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}
