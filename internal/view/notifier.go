package view

import (
	"fmt"
	"io"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Notifier shows short, non-fatal messages to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) {
	f(message)
}

type writerNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterNotifier prints each message on its own line.
func NewWriterNotifier(out io.Writer) Notifier {
	return &writerNotifier{out: out}
}

func (n *writerNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintf(n.out, "⚠️  %s\n", message); err != nil {
		log.Debugf("Failed to write notification: %v", err)
	}
}

type discardNotifier struct{}

func (discardNotifier) Notify(string) {}
