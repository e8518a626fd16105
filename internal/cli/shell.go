package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/addonctl/internal/addon"
	"github.com/agentx-labs/addonctl/internal/branding"
	"github.com/agentx-labs/addonctl/internal/command"
	"github.com/agentx-labs/addonctl/internal/config"
	"github.com/agentx-labs/addonctl/internal/deferred"
	"github.com/agentx-labs/addonctl/internal/markup"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(shellCmd)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run add-on commands interactively",
	Long: `Start an interactive shell. Every line is an add-on command such as
"addon install firebug". Commands that take a while print their answer when
it arrives, so the prompt stays usable in the meantime.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func shellCompleter() *readline.PrefixCompleter {
	types := make([]readline.PrefixCompleterInterface, 0, len(addon.Categories()))
	for _, c := range addon.Categories() {
		types = append(types, readline.PcItem(string(c)))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("addon",
			readline.PcItem("list", types...),
			readline.PcItem("enable"),
			readline.PcItem("disable"),
			readline.PcItem("install"),
			readline.PcItem("uninstall"),
		),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

func runShell(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.repo.Close()
	if err := config.EnsureDir(); err != nil {
		return err
	}

	prompt := branding.CLIName() + "> "
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(config.Dir(), branding.HistoryFile()),
		AutoComplete:    shellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	sh := &shell{
		commands: a.commands,
		out:      rl.Stdout(),
		errOut:   rl.Stderr(),
		render:   rendererFor(cmd.OutOrStdout()),
	}
	_, _ = fmt.Fprintf(sh.out, "%s shell. Type help for commands, exit to leave.\n", branding.DisplayName())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if !sh.exec(strings.TrimSpace(line)) {
			break
		}
	}
	return nil
}

type shell struct {
	commands *command.Registry
	out      io.Writer
	errOut   io.Writer
	render   *markup.Renderer
}

// exec runs one input line. It returns false when the shell should exit.
func (s *shell) exec(line string) bool {
	switch line {
	case "":
		return true
	case "exit", "quit":
		return false
	case "help":
		s.help()
		return true
	}

	words, err := command.Split(line)
	if err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return true
	}
	out, err := s.commands.Dispatch(words)
	if err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return true
	}
	s.print(out)
	return true
}

// print writes immediate messages now and pending ones when they resolve.
func (s *shell) print(out deferred.Outcome) {
	if out.IsPending() {
		out.Result().ObserveProgress(func(msg string) {
			_, _ = fmt.Fprintln(s.errOut, s.render.Render(msg))
		})
	}
	out.Observe(func(msg string) {
		_, _ = fmt.Fprintln(s.out, s.render.Render(msg))
	})
}

func (s *shell) help() {
	for _, spec := range s.commands.Specs() {
		if spec.Exec == nil {
			continue
		}
		usage := spec.Name
		for _, p := range spec.Params {
			if p.Default == nil {
				usage += " <" + p.Name + ">"
			} else {
				usage += " [" + p.Name + "]"
			}
		}
		_, _ = fmt.Fprintf(s.out, "  %-32s %s\n", usage, spec.Description)
	}
	_, _ = fmt.Fprintf(s.out, "  %-32s %s\n", "exit", "Leave the shell")
}
