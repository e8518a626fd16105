package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/agentx-labs/addonctl/internal/deferred"
	"github.com/agentx-labs/addonctl/internal/markup"
	"github.com/charmbracelet/lipgloss"
)

// rendererFor styles output for w, falling back to plain text when w is not
// a terminal.
func rendererFor(w io.Writer) *markup.Renderer {
	return markup.NewRenderer(lipgloss.NewRenderer(w))
}

// awaitOutcome prints the message out resolves to. Progress reported while
// waiting goes to progress. Interrupting the process abandons the wait and
// calls abort before returning.
func awaitOutcome(ctx context.Context, out deferred.Outcome, stdout, progress io.Writer, abort func()) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if out.IsPending() {
		pr := rendererFor(progress)
		out.Result().ObserveProgress(func(msg string) {
			fmt.Fprintln(progress, pr.Render(msg))
		})
	}

	msg, err := out.Wait(ctx)
	if err != nil {
		abort()
		return fmt.Errorf("waiting for the command to finish: %w", err)
	}
	fmt.Fprintln(stdout, rendererFor(stdout).Render(msg))
	return nil
}
