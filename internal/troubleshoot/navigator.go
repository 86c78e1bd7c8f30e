package troubleshoot

import (
	"fmt"
	"sync"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

// DefaultMaxDepth bounds the history stack. A validated tree never gets
// close; the limit stops a walk over unvalidated data that loops.
const DefaultMaxDepth = 32

// OutcomeKind tags what a Choose call did.
type OutcomeKind int

const (
	// OutcomeNone means the answer had neither a next node nor a solution.
	OutcomeNone OutcomeKind = iota
	// OutcomeMoved means the cursor followed a branch.
	OutcomeMoved
	// OutcomeSolution means a leaf was chosen; the cursor stayed put.
	OutcomeSolution
)

// String returns a human-readable outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNone:
		return "none"
	case OutcomeMoved:
		return "moved"
	case OutcomeSolution:
		return "solution"
	default:
		return "unknown"
	}
}

// Outcome is the result of choosing an answer.
type Outcome struct {
	Kind   OutcomeKind
	Answer domain.Answer
	Node   domain.Node // node under the cursor afterwards
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) NavigatorOption {
	return func(nav *Navigator) {
		if n > 0 {
			nav.maxDepth = n
		}
	}
}

// Navigator is the cursor over a Tree: the current node, the stack of
// visited nodes, and the solution surfaced by the last leaf choice.
type Navigator struct {
	mu       sync.Mutex
	tree     *Tree
	current  string
	history  []string
	solution *domain.Answer
	maxDepth int
}

// NewNavigator returns a cursor positioned at the tree root.
func NewNavigator(tree *Tree, opts ...NavigatorOption) (*Navigator, error) {
	if _, err := tree.Root(); err != nil {
		return nil, err
	}
	nav := &Navigator{
		tree:     tree,
		current:  domain.RootNodeID,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(nav)
	}
	return nav, nil
}

// Current returns the node under the cursor.
func (n *Navigator) Current() domain.Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	node, _ := n.tree.NodeByID(n.current)
	return node
}

// AtRoot reports whether the cursor is on the root node.
func (n *Navigator) AtRoot() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current == domain.RootNodeID
}

// Depth returns the number of branches followed since the root.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.history)
}

// Solution returns the answer surfaced by the last leaf choice, if any.
func (n *Navigator) Solution() (domain.Answer, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.solution == nil {
		return domain.Answer{}, false
	}
	return *n.solution, true
}

// Choose selects the i-th answer (0-based) of the current node. A branch
// moves the cursor and pushes history. A leaf surfaces its solution without
// moving. An answer with neither is a no-op. Any shown solution is cleared
// first.
func (n *Navigator) Choose(i int) (Outcome, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.solution = nil
	node, ok := n.tree.NodeByID(n.current)
	if !ok {
		return Outcome{}, fmt.Errorf("current node %q: %w", n.current, domain.ErrNotFound)
	}
	if i < 0 || i >= len(node.Answers) {
		return Outcome{Node: node}, fmt.Errorf("answer %d of %d: %w", i+1, len(node.Answers), domain.ErrInvalidAnswer)
	}

	a := node.Answers[i]
	switch a.Kind() {
	case domain.AnswerBranch:
		next, ok := n.tree.NodeByID(a.Next)
		if !ok {
			return Outcome{Answer: a, Node: node}, fmt.Errorf("next node %q: %w", a.Next, domain.ErrNotFound)
		}
		if len(n.history) >= n.maxDepth {
			return Outcome{Answer: a, Node: node}, fmt.Errorf("hop limit %d reached at %q: %w", n.maxDepth, n.current, domain.ErrIntegrity)
		}
		n.history = append(n.history, n.current)
		n.current = next.ID
		return Outcome{Kind: OutcomeMoved, Answer: a, Node: next}, nil
	case domain.AnswerLeaf:
		n.solution = &a
		return Outcome{Kind: OutcomeSolution, Answer: a, Node: node}, nil
	case domain.AnswerInvalid:
		return Outcome{Answer: a, Node: node}, fmt.Errorf("answer %q has both next and solution: %w", a.Label, domain.ErrIntegrity)
	default:
		return Outcome{Answer: a, Node: node}, nil
	}
}

// Back clears a shown solution, or else returns to the previous node.
// It reports whether anything changed.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.solution != nil {
		n.solution = nil
		return true
	}
	if len(n.history) == 0 {
		return false
	}
	n.current = n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	return true
}

// Reset returns the cursor to the root and clears history and solution.
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.current = domain.RootNodeID
	n.history = nil
	n.solution = nil
}
