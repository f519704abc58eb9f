package entity

// Conn is the line-oriented duplex stream a participant is attached on.
// The telnet terminal implements it; tests drive fakes.
type Conn interface {
	ReadLine() (string, error)
	WriteString(s string) error
	Close() error
}

type Participant struct {
	ID   string
	Mark string
	Conn Conn
}
