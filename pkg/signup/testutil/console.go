package testutil

import (
	"strings"
	"sync"

	"github.com/go-rod/rod/lib/proto"
	"github.com/samber/lo"
)

// Console accumulates console output and uncaught exceptions of a page.
// Events arrive on the client's event goroutine, reads come from the test.
type Console struct {
	mu     sync.Mutex
	logs   []string
	errors []string
}

// Logs returns a copy of the captured console lines in arrival order.
func (c *Console) Logs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.logs...)
}

// Errors returns a copy of the captured uncaught exception messages.
func (c *Console) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.errors...)
}

func (c *Console) addLog(line string) {
	c.mu.Lock()
	c.logs = append(c.logs, line)
	c.mu.Unlock()
}

func (c *Console) addError(msg string) {
	c.mu.Lock()
	c.errors = append(c.errors, msg)
	c.mu.Unlock()
}

// Unexpected returns the lines of logs that are not in known.
// Matching is exact.
func Unexpected(logs, known []string) []string {
	return lo.Filter(logs, func(line string, _ int) bool {
		return !lo.Contains(known, line)
	})
}

// ConsoleText renders console call arguments the way a browser's message
// text does: primitives by value, objects by description, joined by spaces.
func ConsoleText(args []*proto.RuntimeRemoteObject) string {
	parts := lo.Map(args, func(arg *proto.RuntimeRemoteObject, _ int) string {
		switch {
		case arg == nil:
			return ""
		case !arg.Value.Nil():
			return arg.Value.Str()
		case arg.Description != "":
			return arg.Description
		default:
			return string(arg.Type)
		}
	})
	return strings.Join(parts, " ")
}

// ExceptionMessage extracts the message of an uncaught exception.
// The first line of the exception description is preferred over the
// generic "Uncaught" text.
func ExceptionMessage(d *proto.RuntimeExceptionDetails) string {
	if d == nil {
		return ""
	}
	if d.Exception != nil && d.Exception.Description != "" {
		line, _, _ := strings.Cut(d.Exception.Description, "\n")
		return line
	}
	return d.Text
}
