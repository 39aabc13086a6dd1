package repo

import (
	"fmt"
	"strings"

	"github.com/odvcencio/oz/pkg/object"
)

// LogNode describes one visited commit.
type LogNode struct {
	Hash    object.Hash
	Summary string // first message line, with `\` and `"` escaped
	Parents []object.Hash
}

// LogEdge links a commit to one of its parents.
type LogEdge struct {
	Child  object.Hash
	Parent object.Hash
}

// LogEvent is either a Node or an Edge; exactly one field is set.
type LogEvent struct {
	Node *LogNode
	Edge *LogEdge
}

// WalkHistory does a depth-first walk of the commit graph from start. Each
// commit is emitted once as a node; for each of its parents, in recorded
// order, an edge is emitted and the parent is walked. visited tracks
// expanded hashes across calls, so shared ancestors (diamond merges) and
// cycles are expanded only once. Pass nil to start with an empty set.
func WalkHistory(store object.Reader, start object.Hash, visited map[object.Hash]struct{}, emit func(LogEvent) error) error {
	if visited == nil {
		visited = make(map[object.Hash]struct{})
	}
	return walkHistory(store, start, visited, emit)
}

func walkHistory(store object.Reader, h object.Hash, visited map[object.Hash]struct{}, emit func(LogEvent) error) error {
	if _, ok := visited[h]; ok {
		return nil
	}
	visited[h] = struct{}{}

	obj, err := store.Read(h)
	if err != nil {
		return fmt.Errorf("log: read %s: %w", h, err)
	}
	c, ok := obj.(*object.Commit)
	if !ok {
		return fmt.Errorf("log: %w: %s is a %s, not a commit", ErrInconsistentHistory, h, obj.Type())
	}

	parents := c.Parents()
	node := &LogNode{
		Hash:    h,
		Summary: escapeLabel(c.Summary()),
		Parents: parents,
	}
	if err := emit(LogEvent{Node: node}); err != nil {
		return err
	}

	for _, p := range parents {
		if err := emit(LogEvent{Edge: &LogEdge{Child: h, Parent: p}}); err != nil {
			return err
		}
		if err := walkHistory(store, p, visited, emit); err != nil {
			return err
		}
	}
	return nil
}

// LogFrom collects the events of WalkHistory starting at start.
func (r *Repo) LogFrom(start object.Hash) ([]LogEvent, error) {
	var events []LogEvent
	err := WalkHistory(r.Store, start, nil, func(ev LogEvent) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeLabel(s string) string {
	return labelEscaper.Replace(s)
}
