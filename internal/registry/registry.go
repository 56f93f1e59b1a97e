// Package registry provides a global registry for show factories.
// Shows register themselves in init() functions, allowing the platform
// to discover and instantiate shows without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-fireworks/internal/core"
)

// Show is the interface every display implements.
// Shows contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, scaling and presentation.
type Show interface {
	// ID returns a unique identifier for this show (e.g., "fireworks", "newyear").
	// Used for CLI commands and session history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Size returns the logical display size the show draws in.
	// The platform scales it onto the terminal or window.
	Size() (w, h int)

	// Reset initializes or restarts the show.
	// The RuntimeConfig provides the output size and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Launch, Pause, etc.).
	Step(in core.InputFrame) core.StepResult

	// Render draws the frame produced by the last Step onto dst,
	// in logical coordinates.
	Render(dst core.Surface)

	// State returns the current show state.
	State() core.ShowState
}

// ShowInfo contains metadata about a registered show.
type ShowInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a show.
type Factory func() Show

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a show factory to the registry.
// Typically called from a show's init() function.
// Panics if a show with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: show %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f().Title()
}

// List returns information about all registered shows, sorted by ID.
func List() []ShowInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ShowInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ShowInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new show by its ID.
// Returns an error if the show ID is not registered.
func Create(id string) (Show, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown show %q", id)
	}

	return f(), nil
}

// Exists checks if a show with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
