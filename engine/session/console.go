package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrInputClosed is returned when the input stream ends before Exit is chosen.
var ErrInputClosed = errors.New("input closed")

// SecretReader reads one line without echoing it.
type SecretReader func() (string, error)

type styles struct {
	banner lipgloss.Style
	notice lipgloss.Style
	failed lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		banner: r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		notice: r.NewStyle().Foreground(lipgloss.Color("86")),
		failed: r.NewStyle().Foreground(lipgloss.Color("204")),
	}
}

// console is the line-oriented request/response boundary of a session.
type console struct {
	in     *bufio.Reader
	out    io.Writer
	secret SecretReader
	styles styles
}

func newConsole(in io.Reader, out io.Writer, secret SecretReader) *console {
	return &console{
		in:     bufio.NewReader(in),
		out:    out,
		secret: secret,
		styles: newStyles(out),
	}
}

func (c *console) print(s string) {
	fmt.Fprint(c.out, s)
}

func (c *console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *console) success(format string, args ...any) {
	c.println(c.styles.notice.Render(fmt.Sprintf(format, args...)))
}

func (c *console) fail(format string, args ...any) {
	c.println(c.styles.failed.Render(fmt.Sprintf(format, args...)))
}

// readLine returns the next line without its terminator. A final line without
// a newline is still returned; ErrInputClosed only comes once nothing is left.
func (c *console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			return "", ErrInputClosed
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *console) ask(prompt string) (string, error) {
	c.print(prompt)
	return c.readLine()
}

// askSecret falls back to the plain stream while typed-ahead input is still
// buffered, so answers stay in order.
func (c *console) askSecret(prompt string) (string, error) {
	if c.secret == nil || c.in.Buffered() > 0 {
		return c.ask(prompt)
	}
	c.print(prompt)
	value, err := c.secret()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return value, nil
}

// askInt reports ok=false when the answer is not an integer.
func (c *console) askInt(prompt string) (n int, ok bool, err error) {
	line, err := c.ask(prompt)
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		return 0, false, nil
	}
	return n, true, nil
}
