package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

const toolName = "pdftotext"

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner executes external commands and returns their stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, ErrPDFToolNotFound
	}
	return exec.CommandContext(ctx, name, args...).Output()
}

// CheckAvailable returns ErrPDFToolNotFound if pdftotext cannot be found.
func CheckAvailable() error {
	if _, err := exec.LookPath(toolName); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext is part of poppler:
  macOS:         brew install poppler
  Debian/Ubuntu: apt install poppler-utils
  Fedora:        dnf install poppler-utils`
}

// pdftotextPages writes the PDF to a temporary file and runs pdftotext on it.
// pdftotext ends every page with a form feed.
func pdftotextPages(ctx context.Context, runner CommandRunner, content []byte) ([]string, error) {
	tmp, err := os.CreateTemp("", "wortlens-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}

	out, err := runner.Run(ctx, toolName, "-enc", "UTF-8", "-layout", tmp.Name(), "-")
	if err != nil {
		if errors.Is(err, ErrPDFToolNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: pdftotext failed: %v", domain.ErrParse, err)
	}

	return splitPages(string(out)), nil
}

// splitPages splits pdftotext output on form feeds.
func splitPages(out string) []string {
	if out == "" {
		return nil
	}
	pages := strings.Split(out, "\f")
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	for i, p := range pages {
		pages[i] = strings.TrimRight(p, "\n")
	}
	return pages
}
