package cursor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/tabstop"
	"github.com/bethropolis/softtab/internal/types"
)

// ErrUnknownCommand is returned by Registry.Run for unregistered names.
var ErrUnknownCommand = errors.New("unknown command")

// Command runs one caret operation against h and returns the primary
// (first) selection's active position afterwards.
type Command func(ctx context.Context, h Host) (types.Position, error)

// Command names.
const (
	MoveLeft    = "move-left"
	MoveRight   = "move-right"
	ExtendLeft  = "extend-left"
	ExtendRight = "extend-right"
	SmartHome   = "smart-home"
	SmartEnd    = "smart-end"
	Home        = "home"
	End         = "end"
	MoveUp      = "move-up"
	MoveDown    = "move-down"
	ExtendUp    = "extend-up"
	ExtendDown  = "extend-down"
	DeleteLeft  = "delete-left"
	DeleteRight = "delete-right"
)

// Registry maps command names to commands.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns a registry holding every caret command.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]Command)}
	r.Register(MoveLeft, moveHorizontal(types.Left, false))
	r.Register(MoveRight, moveHorizontal(types.Right, false))
	r.Register(ExtendLeft, moveHorizontal(types.Left, true))
	r.Register(ExtendRight, moveHorizontal(types.Right, true))
	r.Register(SmartHome, home(true))
	r.Register(SmartEnd, end(true))
	r.Register(Home, home(false))
	r.Register(End, end(false))
	r.Register(MoveUp, moveVertical(types.Up, false))
	r.Register(MoveDown, moveVertical(types.Down, false))
	r.Register(ExtendUp, moveVertical(types.Up, true))
	r.Register(ExtendDown, moveVertical(types.Down, true))
	r.Register(DeleteLeft, deleteToward(types.Left))
	r.Register(DeleteRight, deleteToward(types.Right))
	return r
}

// Register adds or replaces a command.
func (r *Registry) Register(name string, cmd Command) {
	r.commands[name] = cmd
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names lists registered commands in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named command.
func (r *Registry) Run(ctx context.Context, name string, h Host) (types.Position, error) {
	cmd, ok := r.Lookup(name)
	if !ok {
		return types.Position{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	logger.DebugTagf("cursor", "running %s", name)
	return cmd(ctx, h)
}

// --- helpers ---

// snapshot returns the host's selections clamped to the document.
func snapshot(h Host) ([]types.Selection, buffer.Reader) {
	doc := h.Document()
	sels := h.Selections()
	out := make([]types.Selection, len(sels))
	for i, sel := range sels {
		out[i] = types.Selection{
			Anchor: tabstop.Clamp(doc, sel.Anchor),
			Active: tabstop.Clamp(doc, sel.Active),
		}
	}
	return out, doc
}

// commit stores sels on the host and reveals the primary active position.
func commit(h Host, sels []types.Selection) types.Position {
	h.SetSelections(sels)
	primary := primaryActive(sels)
	h.Reveal(primary)
	return primary
}

func primaryActive(sels []types.Selection) types.Position {
	if len(sels) == 0 {
		return types.Position{}
	}
	return sels[0].Active
}

func primaryOf(h Host) types.Position {
	return primaryActive(h.Selections())
}

func lineLength(doc buffer.Reader, index int) (int, error) {
	line, err := buffer.LineAt(doc, index)
	if err != nil {
		return 0, err
	}
	return line.Len(), nil
}
