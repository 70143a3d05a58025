package exec

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// CommandWrapper is implemented by domain-specific commands (package
// installs, post-generation hooks) so they can be registered and run
// without this package knowing about the tools involved.
//
// Wrappers receive the Executor at execution time, not construction time,
// which keeps them trivially testable with mocked executors.
type CommandWrapper interface {
	// Name returns the command name for registry lookup.
	Name() string
	// Description returns a brief description of what the command does.
	Description() string
	// Execute runs the command with the given context and executor.
	Execute(ctx context.Context, exec *Executor) error
}

// Registry manages registered command wrappers.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]CommandWrapper
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]CommandWrapper)}
}

// Register adds a command wrapper. Duplicate names are rejected.
func (r *Registry) Register(cmd CommandWrapper) error {
	if cmd == nil {
		return fmt.Errorf("cannot register nil command")
	}
	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("cannot register command with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %q is already registered", name)
	}
	r.commands[name] = cmd
	return nil
}

// Get retrieves a command wrapper by name.
func (r *Registry) Get(name string) (CommandWrapper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all registered command names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListWithDescriptions returns registered command names mapped to their
// descriptions.
func (r *Registry) ListWithDescriptions() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.commands))
	for name, cmd := range r.commands {
		out[name] = cmd.Description()
	}
	return out
}

// Size returns the number of registered commands.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.commands)
}

// Execute runs a registered command by name.
func (r *Registry) Execute(ctx context.Context, name string, exec *Executor) error {
	cmd, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("command %q not found in registry", name)
	}
	return cmd.Execute(ctx, exec)
}
