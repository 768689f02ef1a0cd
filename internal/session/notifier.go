package session

import (
	"fmt"
	"io"
)

// WriterNotifier печатает уведомления построчно: прогресс и успех в Out, ошибки в Err.
type WriterNotifier struct {
	Out io.Writer
	Err io.Writer
}

func (w WriterNotifier) Loading(msg string) {
	_, _ = fmt.Fprintln(w.Out, msg)
}

func (w WriterNotifier) Success(msg string) {
	_, _ = fmt.Fprintln(w.Out, msg)
}

func (w WriterNotifier) Error(msg string) {
	_, _ = fmt.Fprintln(w.Err, msg)
}

type nopNotifier struct{}

func (nopNotifier) Loading(string) {}
func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
