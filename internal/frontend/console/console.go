// Package console is the interactive terminal frontend: line-based input
// with numbered menus and optional ANSI colors.
package console

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/session"
)

type lineResult struct {
	line string
	err  error
}

// Console implements session.Frontend over a reader and a writer.
// Console is not safe for concurrent use.
type Console struct {
	out   io.Writer
	color bool
	lines chan lineResult
	// pending holds the error that ended input, returned on every later read.
	pending error
}

// New starts reading lines from in. The reader goroutine exits at end of
// input; it may stay blocked on in after the game ends, as a terminal read can.
//
// Postcondition: Returns a Console ready for prompts.
func New(in io.Reader, out io.Writer, color bool) *Console {
	c := &Console{out: out, color: color, lines: make(chan lineResult)}
	go c.readLoop(bufio.NewReaderSize(in, 4096))
	return c
}

func (c *Console) readLoop(r *bufio.Reader) {
	for {
		line, err := readLine(r)
		c.lines <- lineResult{line: line, err: err}
		if err != nil {
			close(c.lines)
			return
		}
	}
}

// readLine reads one line without its terminator, accepting "\n", "\r\n" or a
// bare "\r", and drops control characters other than tab.
func readLine(r *bufio.Reader) (string, error) {
	var line bytes.Buffer
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && line.Len() > 0 {
				return line.String(), nil
			}
			return line.String(), err
		}
		if b == '\n' {
			break
		}
		if b == '\r' {
			next, err := r.Peek(1)
			if err == nil && len(next) > 0 && next[0] == '\n' {
				_, _ = r.ReadByte()
			}
			break
		}
		if b < 32 && b != '\t' {
			continue
		}
		line.WriteByte(b)
	}
	return line.String(), nil
}

// prompt writes text without a newline and waits for one line of input.
func (c *Console) prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprint(c.out, text)
	if c.pending != nil {
		return "", c.pending
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-c.lines:
		if !ok {
			c.pending = io.EOF
			return "", io.EOF
		}
		if res.err != nil {
			c.pending = res.err
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

func (c *Console) paint(color, text string) string {
	if !c.color {
		return text
	}
	return Colorize(color, text)
}

// PromptName asks for the character's name until a non-blank one is given.
func (c *Console) PromptName(ctx context.Context) (string, error) {
	for {
		name, err := c.prompt(ctx, "Enter your character's name: ")
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
	}
}

// MainMenu prints the menu and reads a command.
func (c *Console) MainMenu(ctx context.Context) (session.Command, error) {
	menu := c.paint(Bold, "\nMain Menu:") + "\n1. Explore\n2. Inventory\n3. Save\n4. Load\n5. Quit\nChoose: "
	line, err := c.prompt(ctx, menu)
	if err != nil {
		return session.CommandUnknown, err
	}
	return ParseMenu(line), nil
}

// CombatAction prints the fight header and reads an action, asking for an
// item name when "use" was chosen without one.
func (c *Console) CombatAction(ctx context.Context, status combat.Status) (combat.Action, error) {
	header := "\n" + c.paint(BrightCyan, status.Header())
	line, err := c.prompt(ctx, header+"\n1. Attack\n2. Use Item\n3. Flee\nChoice: ")
	if err != nil {
		return combat.Action{}, err
	}
	action := ParseCombat(line)
	if action.Type != combat.ActionUseItem || action.ItemName != "" {
		return action, nil
	}

	c.Display(listing(status.Items))
	name, err := c.prompt(ctx, "Enter item name to use: ")
	if err != nil {
		return combat.Action{}, err
	}
	return combat.UseItem(name), nil
}

// ChooseItem asks which item to use; blank input or "no" declines.
func (c *Console) ChooseItem(ctx context.Context, _ []inventory.Item) (string, bool, error) {
	name, err := c.prompt(ctx, "Use item? (name or 'no'): ")
	if err != nil {
		return "", false, err
	}
	if name == "" || strings.EqualFold(name, "no") {
		return "", false, nil
	}
	return name, true, nil
}

// Display writes message on its own line, colored by its kind.
func (c *Console) Display(message string) {
	fmt.Fprintln(c.out, c.style(message))
}

func (c *Console) style(msg string) string {
	if !c.color {
		return msg
	}
	trimmed := strings.TrimLeft(msg, "\n")
	switch {
	case strings.HasPrefix(trimmed, "Error:"), strings.HasPrefix(trimmed, "Game Over!"):
		return Colorize(BrightRed, msg)
	case strings.HasPrefix(trimmed, "==="):
		return Colorize(BrightYellow, msg)
	case strings.HasPrefix(trimmed, "A wild "), strings.Contains(msg, " CRITS "):
		return Colorize(Red, msg)
	case strings.HasPrefix(trimmed, "Found:"), strings.HasPrefix(trimmed, "Defeated "), strings.Contains(msg, "leveled up"):
		return Colorize(BrightGreen, msg)
	case strings.HasSuffix(msg, "damage!"):
		return Colorize(Yellow, msg)
	default:
		return msg
	}
}

func listing(items []inventory.Item) string {
	var b strings.Builder
	b.WriteString("=== Inventory ===")
	if len(items) == 0 {
		b.WriteString("\n(empty)")
	}
	for i, it := range items {
		fmt.Fprintf(&b, "\n%d: %s", i, it)
	}
	return b.String()
}
