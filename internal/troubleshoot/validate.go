package troubleshoot

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

// Problem is one integrity finding. Warnings are reported but do not fail
// validation.
type Problem struct {
	NodeID  string
	Message string
	Warning bool
}

func (p Problem) String() string {
	level := "error"
	if p.Warning {
		level = "warning"
	}
	if p.NodeID == "" {
		return fmt.Sprintf("%s: %s", level, p.Message)
	}
	return fmt.Sprintf("%s: node %q: %s", level, p.NodeID, p.Message)
}

// IntegrityError aggregates the fatal problems found by Validate.
type IntegrityError struct {
	Problems []Problem
	rootless bool
}

func (e *IntegrityError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.String())
	}
	return "troubleshooting tree: " + strings.Join(parts, "; ")
}

// Is matches domain.ErrIntegrity always and domain.ErrRootMissing when the
// root node is absent.
func (e *IntegrityError) Is(target error) bool {
	if target == domain.ErrIntegrity {
		return true
	}
	return e.rootless && target == domain.ErrRootMissing
}

// Check runs every integrity check and returns all findings, warnings
// included, in a stable order.
func (t *Tree) Check() []Problem {
	var problems []Problem
	add := func(id, format string, args ...any) {
		problems = append(problems, Problem{NodeID: id, Message: fmt.Sprintf(format, args...)})
	}

	if _, ok := t.byID[domain.RootNodeID]; !ok {
		add("", "no %q node", domain.RootNodeID)
	}

	seen := make(map[string]bool, len(t.nodes))
	for _, n := range t.nodes {
		if n.ID == "" {
			add("", "node with empty id")
		} else if seen[n.ID] {
			add(n.ID, "duplicate id")
		}
		seen[n.ID] = true

		if strings.TrimSpace(n.Question) == "" {
			add(n.ID, "empty question")
		}
		if len(n.Answers) == 0 {
			add(n.ID, "no answers")
		}
		for i, a := range n.Answers {
			if strings.TrimSpace(a.Label) == "" {
				add(n.ID, "answer %d has an empty label", i)
			}
			switch a.Kind() {
			case domain.AnswerInvalid:
				add(n.ID, "answer %d has both next and solution", i)
			case domain.AnswerBranch:
				if a.Next == n.ID {
					add(n.ID, "answer %d points at its own node", i)
				} else if _, ok := t.byID[a.Next]; !ok {
					add(n.ID, "answer %d points at unknown node %q", i, a.Next)
				}
			}
		}
	}

	if cycle := t.findCycle(); cycle != nil {
		add(cycle[0], "cycle: %s", strings.Join(cycle, " -> "))
	}

	if _, ok := t.byID[domain.RootNodeID]; ok {
		reachable := t.reachableFrom(domain.RootNodeID)
		for _, n := range t.nodes {
			if !reachable[n.ID] {
				problems = append(problems, Problem{NodeID: n.ID, Message: "unreachable from root", Warning: true})
			}
		}
	}

	return problems
}

// Validate returns an *IntegrityError when any fatal problem exists. The
// error matches domain.ErrIntegrity, and domain.ErrRootMissing when the root
// is absent.
func (t *Tree) Validate() error {
	var fatal []Problem
	for _, p := range t.Check() {
		if p.Warning {
			t.log.Warn("%s", p)
			continue
		}
		fatal = append(fatal, p)
	}
	if len(fatal) == 0 {
		return nil
	}
	_, hasRoot := t.byID[domain.RootNodeID]
	return &IntegrityError{Problems: fatal, rootless: !hasRoot}
}

// findCycle runs a depth-first search from every node and returns the first
// cycle found as a path whose last element repeats the first, or nil.
// Self-loops are reported separately by Check.
func (t *Tree) findCycle() []string {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int, len(t.nodes))
	var stack []string

	var visit func(id string) []string
	visit = func(id string) []string {
		color[id] = grey
		stack = append(stack, id)
		n := t.nodes[t.byID[id]]
		for _, a := range n.Answers {
			if a.Kind() != domain.AnswerBranch || a.Next == id {
				continue
			}
			if _, ok := t.byID[a.Next]; !ok {
				continue
			}
			switch color[a.Next] {
			case grey:
				for i, s := range stack {
					if s == a.Next {
						cycle := append([]string(nil), stack[i:]...)
						return append(cycle, a.Next)
					}
				}
			case white:
				if c := visit(a.Next); c != nil {
					return c
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return nil
	}

	for _, n := range t.nodes {
		if color[n.ID] == white {
			if c := visit(n.ID); c != nil {
				return c
			}
		}
	}
	return nil
}

func (t *Tree) reachableFrom(start string) map[string]bool {
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, a := range t.nodes[t.byID[id]].Answers {
			if a.Kind() != domain.AnswerBranch || seen[a.Next] {
				continue
			}
			if _, ok := t.byID[a.Next]; !ok {
				continue
			}
			seen[a.Next] = true
			queue = append(queue, a.Next)
		}
	}
	return seen
}
