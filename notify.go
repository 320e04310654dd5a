package calcreport

import (
	"fmt"
	"io"
	"sync"
)

// NoticeKind tells the UI which alert to show.
type NoticeKind int

const (
	// NoticeUnavailable is shown when the PDF exists but cannot be shared.
	NoticeUnavailable NoticeKind = iota + 1
	// NoticeFailure is shown for every other export failure.
	NoticeFailure
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeUnavailable:
		return "unavailable"
	case NoticeFailure:
		return "failure"
	default:
		return fmt.Sprintf("NoticeKind(%d)", int(k))
	}
}

// User-facing notice text.
const (
	NoticeTitle        = "Error"
	MessageUnavailable = "Sharing is not available on this device"
	MessageFailure     = "Failed to generate PDF. Please try again."
)

// Notifier surfaces export problems to the user. Notify must not block.
type Notifier interface {
	Notify(kind NoticeKind, title, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(kind NoticeKind, title, message string)

// Notify calls f.
func (f NotifierFunc) Notify(kind NoticeKind, title, message string) {
	f(kind, title, message)
}

// WriterNotifier prints "title: message" lines to W. Safe for concurrent use.
type WriterNotifier struct {
	W  io.Writer
	mu sync.Mutex
}

// NewWriterNotifier returns a notifier writing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{W: w}
}

// Notify writes one line.
func (n *WriterNotifier) Notify(_ NoticeKind, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.W, "%s: %s\n", title, message)
}

type nopNotifier struct{}

func (nopNotifier) Notify(NoticeKind, string, string) {}

// Compile-time interface checks.
var (
	_ Notifier = NotifierFunc(nil)
	_ Notifier = (*WriterNotifier)(nil)
	_ Notifier = nopNotifier{}
)
