package verification

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

// ForgeRunner executes verification commands in a pty so the tool keeps its
// colored, incremental output, and mirrors everything to the terminal
type ForgeRunner struct {
	out io.Writer
	log *slog.Logger
}

// NewForgeRunner creates a runner streaming to stdout
func NewForgeRunner(log *slog.Logger) *ForgeRunner {
	return &ForgeRunner{out: os.Stdout, log: log}
}

// Run executes the command and waits for it to exit
func (r *ForgeRunner) Run(ctx context.Context, command usecase.VerificationCommand) error {
	cmd := exec.CommandContext(ctx, command.Program, command.Args...)
	cmd.Dir = command.Dir
	cmd.Env = append(os.Environ(), command.Env...)

	r.log.Debug("running verification", "cmd", command.String(), "dir", command.Dir)

	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", command.Program, err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	var output bytes.Buffer
	// reading a pty after the child exits returns EIO on linux
	if _, err := io.Copy(io.MultiWriter(r.out, &output), ptyFile); err != nil && !errors.Is(err, syscall.EIO) {
		r.log.Debug("error reading verification output", "error", err)
	}

	if err := cmd.Wait(); err != nil {
		if alreadyVerified(output.String()) {
			return nil
		}
		return fmt.Errorf("%s exited: %w", command.Program, err)
	}
	return nil
}

func alreadyVerified(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "already verified")
}

var _ usecase.VerificationRunner = (*ForgeRunner)(nil)
