package terminal

import (
	"bufio"
	"fmt"
	"net"
	"strings"
)

// ANSI escape sequences used for the telnet UI. Cosmetic only, never part
// of the protocol contract.
const (
	ClearScreen = "\x1B[2J\x1B[3J\x1B[H"
	Reset       = "\x1b[0m"
	Bold        = "\x1B[1m"
	Red         = "\x1b[31m"
	Green       = "\x1b[32m"
	Yellow      = "\x1b[33m"
)

// Terminal is a line-oriented wrapper around one participant's TCP
// connection. It implements entity.Conn.
type Terminal struct {
	conn   net.Conn
	reader *bufio.Reader
}

func New(conn net.Conn) *Terminal {
	return &Terminal{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

// ReadLine blocks for the next line of input and returns it with the line
// terminator and surrounding whitespace trimmed.
func (that *Terminal) ReadLine() (string, error) {
	line, err := that.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read line: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func (that *Terminal) WriteString(s string) error {
	if _, err := that.conn.Write([]byte(s)); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}

	return nil
}

func (that *Terminal) Close() error {
	if err := that.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}

func (that *Terminal) RemoteAddr() string {
	return that.conn.RemoteAddr().String()
}
