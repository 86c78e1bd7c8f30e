// Package troubleshoot holds the taste troubleshooting decision tree and a
// cursor that walks it.
package troubleshoot

import (
	"fmt"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Tree is an immutable set of nodes keyed by ID. NewTree does not validate;
// call Validate once after loading.
type Tree struct {
	nodes []domain.Node
	byID  map[string]int
	log   *logger.Logger
}

// NewTree builds a tree from nodes in load order. On duplicate IDs lookups
// resolve to the first node; Validate reports the duplicate.
func NewTree(nodes []domain.Node, log *logger.Logger) *Tree {
	t := &Tree{
		nodes: make([]domain.Node, 0, len(nodes)),
		byID:  make(map[string]int, len(nodes)),
		log:   log.With("troubleshoot"),
	}
	for _, n := range nodes {
		if _, dup := t.byID[n.ID]; !dup {
			t.byID[n.ID] = len(t.nodes)
		}
		t.nodes = append(t.nodes, n.Clone())
	}
	t.log.Debug("tree loaded, nodes=%d", len(t.nodes))
	return t
}

// NodeByID returns the node with the given ID.
func (t *Tree) NodeByID(id string) (domain.Node, bool) {
	i, ok := t.byID[id]
	if !ok {
		return domain.Node{}, false
	}
	return t.nodes[i].Clone(), true
}

// Root returns the entry node. A tree without one is a data-integrity
// failure, not a user error.
func (t *Tree) Root() (domain.Node, error) {
	n, ok := t.NodeByID(domain.RootNodeID)
	if !ok {
		return domain.Node{}, fmt.Errorf("troubleshooting tree: %w", domain.ErrRootMissing)
	}
	return n, nil
}

// Nodes returns every node in load order.
func (t *Tree) Nodes() []domain.Node {
	out := make([]domain.Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		out = append(out, n.Clone())
	}
	return out
}

// Leaves returns the terminal nodes, those whose answers are all solutions.
func (t *Tree) Leaves() []domain.Node {
	out := make([]domain.Node, 0)
	for _, n := range t.nodes {
		if n.IsTerminal() {
			out = append(out, n.Clone())
		}
	}
	return out
}
