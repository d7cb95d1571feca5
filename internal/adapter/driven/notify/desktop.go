// Package notify sends desktop notifications through the terminal using the
// OSC 777 escape sequence understood by most modern terminal emulators.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ericfisherdev/prcelebration/internal/domain/model"
	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

var _ driven.Presenter = (*Desktop)(nil)

// AdviceTitle heads one-off informational notifications.
const AdviceTitle = "PR Celebration"

// Desktop presents outcomes as OSC 777 desktop notifications.
type Desktop struct {
	open   func() (io.WriteCloser, error)
	inTmux func() bool
}

// Option configures a Desktop.
type Option func(*Desktop)

// WithWriter sends escape sequences to w instead of the controlling terminal.
func WithWriter(w io.Writer) Option {
	return func(d *Desktop) {
		d.open = func() (io.WriteCloser, error) { return nopCloser{w}, nil }
	}
}

// WithTmux overrides tmux detection.
func WithTmux(inTmux bool) Option {
	return func(d *Desktop) {
		d.inTmux = func() bool { return inTmux }
	}
}

// NewDesktop creates a Desktop writing to /dev/tty, falling back to stdout
// when there is no controlling terminal.
func NewDesktop(opts ...Option) *Desktop {
	d := &Desktop{
		open:   openTTY,
		inTmux: func() bool { return os.Getenv("TMUX") != "" },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Present sends the celebratory or discouraging notification for pr.
func (d *Desktop) Present(_ context.Context, positive bool, pr model.PRSummary) error {
	return d.send(model.OutcomeOf(positive).Headline(), body(pr))
}

// Advise sends an informational notification.
func (d *Desktop) Advise(_ context.Context, message string) error {
	return d.send(AdviceTitle, message)
}

func (d *Desktop) send(title, message string) error {
	escape := Sequence(title, message, d.inTmux())

	w, err := d.open()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer w.Close()

	if _, err := io.WriteString(w, escape); err != nil {
		return fmt.Errorf("writing desktop notification: %w", err)
	}
	return nil
}

// Sequence builds the OSC 777 notify escape. Inside tmux the sequence is
// wrapped in a DCS passthrough.
func Sequence(title, body string, inTmux bool) string {
	osc := fmt.Sprintf("\033]777;notify;%s;%s\007", sanitize(title), sanitize(body))
	if inTmux {
		return "\033Ptmux;\033" + osc + "\033\\"
	}
	return osc
}

func body(pr model.PRSummary) string {
	if pr.HasNumber() {
		return fmt.Sprintf("PR #%d: %s", pr.Number, pr.Title)
	}
	return pr.Title
}

// sanitize drops control characters and the field separator, which would
// otherwise terminate or split the escape sequence.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == ';':
			return ','
		case r == '\n' || r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
}

func openTTY() (io.WriteCloser, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return nopCloser{os.Stdout}, nil
	}
	return tty, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
