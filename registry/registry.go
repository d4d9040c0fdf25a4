// Package registry provides the command-to-handler mapping consumed by
// the cmdserve engine through its Dispatcher contract.
package registry

import (
	"fmt"
	"sync"
)

// HandlerFunc produces the single-line response for one command. The
// argument is empty when the client sent a bare command. Handlers must
// not block indefinitely.
type HandlerFunc func(argument string) string

// Registry maps command names to handlers. Dispatch is safe for use
// from concurrent connection handlers; Register may be called at any
// time, though the usual pattern is to register everything before the
// server starts.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	order    []string // registration order, drives Commands and help text
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register binds name to h, replacing any previous handler. A nil h
// removes the binding.
func (r *Registry) Register(name string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h == nil {
		if _, ok := r.handlers[name]; ok {
			delete(r.handlers, name)
			for i, n := range r.order {
				if n == name {
					r.order = append(r.order[:i], r.order[i+1:]...)
					break
				}
			}
		}
		return
	}
	if _, ok := r.handlers[name]; !ok {
		r.order = append(r.order, name)
	}
	r.handlers[name] = h
}

// Dispatch invokes the handler registered for command. An unrecognized
// command yields a descriptive error response, never a failure.
func (r *Registry) Dispatch(command, argument string) string {
	r.mu.RLock()
	h, ok := r.handlers[command]
	r.mu.RUnlock()
	if !ok {
		return fmt.Sprintf("ERROR: Unknown command '%s'. Type 'help' for a list of commands.", command)
	}
	return h(argument)
}

// Commands returns the registered command names in registration order.
func (r *Registry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
