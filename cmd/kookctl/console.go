package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kookbot/kook-go/pkg/app"
	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/events"
	"github.com/kookbot/kook-go/pkg/infrastructure/eventbus"
	"github.com/kookbot/kook-go/pkg/logger"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Dispatch synthetic events interactively",
	Long: `Starts a prompt that turns lines such as

  user.online 42 alice
  channel.created c1 general
  channel.message.updated c1 m1 new text
  role.created 7 mods

into events and dispatches them through the bus. Every handler attached to
the event type reacts, including the relay when one is configured.
Type "help" for the full grammar. When stdin is not a terminal, lines are
read as a script; lines starting with # are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s, err := newConsole(container, out)
		if err != nil {
			return err
		}
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return s.run(cmd.InOrStdin())
		}

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "kook> ",
			HistoryFile:     historyFile(),
			AutoComplete:    completer(),
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
			Stdout:          out,
		})
		if err != nil {
			return fmt.Errorf("console: %w", err)
		}
		defer rl.Close()

		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if s.exec(line) {
				return nil
			}
		}
	},
}

// consoleSession executes console lines against a container.
type consoleSession struct {
	c   *app.Container
	out io.Writer
	now func() time.Time
}

// newConsole attaches the echo listener to every event type.
func newConsole(c *app.Container, out io.Writer) (*consoleSession, error) {
	s := &consoleSession{c: c, out: out, now: time.Now}
	if err := events.ListenAll(c.Bus, "console.echo", s.echo, eventbus.WithOwner(s)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *consoleSession) echo(e domain.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "<- %s #%d %s\n", e.EventType(), s.c.Audit.Count(e.EventType()), data)
	return nil
}

// exec runs one line and reports whether the session should end.
func (s *consoleSession) exec(line string) (quit bool) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return false
	case "quit", "exit":
		return true
	case "help":
		s.help()
		return false
	case "stats":
		s.stats()
		return false
	}

	e, err := parseEvent(line, s.now())
	if err != nil {
		fmt.Fprintln(s.out, "error:", err)
		return false
	}
	logger.DebugCF("console", "Dispatching event", map[string]interface{}{
		"event": e.EventType().String(),
	})
	s.c.Bus.Dispatch(e)
	return false
}

// run executes lines from r until EOF or quit, for piped scripts.
func (s *consoleSession) run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if s.exec(line) {
			return nil
		}
	}
	return scanner.Err()
}

func (s *consoleSession) help() {
	types := events.Types()
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Fprintf(s.out, "  %-26s %s\n", t, usage[t])
	}
	fmt.Fprintln(s.out, "  stats                      event counts")
	fmt.Fprintln(s.out, "  quit                       leave the console")
}

func (s *consoleSession) stats() {
	entries := s.c.Audit.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "no events dispatched")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(s.out, "  %-26s %4d  last %s\n", e.Type, e.Count, e.LastSeen.Format(time.RFC3339))
	}
}

func completer() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("stats"),
		readline.PcItem("quit"),
	}
	for _, t := range events.Types() {
		items = append(items, readline.PcItem(t.String()))
	}
	return readline.NewPrefixCompleter(items...)
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "kookctl")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}
