package troubleshoot

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottobrew/internal/dataset"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

func newTestTree(t *testing.T) *Tree {
	t.Helper()
	ds, err := dataset.Default()
	require.NoError(t, err)
	return NewTree(ds.Nodes, logger.New(logger.LevelOff, nil))
}

func quietTree(nodes ...domain.Node) *Tree {
	return NewTree(nodes, logger.New(logger.LevelOff, nil))
}

func TestDefaultTreeIsValid(t *testing.T) {
	tree := newTestTree(t)
	require.NoError(t, tree.Validate())
	assert.Empty(t, tree.Check(), "built-in tree has no warnings either")
}

func TestRoot(t *testing.T) {
	tree := newTestTree(t)
	root, err := tree.Root()
	require.NoError(t, err)
	assert.Equal(t, domain.RootNodeID, root.ID)
	assert.Len(t, root.Answers, 5)
}

func TestRootMissing(t *testing.T) {
	tree := quietTree(domain.Node{ID: "a", Question: "q", Answers: []domain.Answer{{Label: "x", Solution: "y"}}})

	_, err := tree.Root()
	assert.True(t, errors.Is(err, domain.ErrRootMissing))

	err = tree.Validate()
	assert.True(t, errors.Is(err, domain.ErrRootMissing))
	assert.True(t, errors.Is(err, domain.ErrIntegrity))
}

func TestNodeByID(t *testing.T) {
	tree := newTestTree(t)

	n, ok := tree.NodeByID("under-extracted")
	require.True(t, ok)
	assert.Contains(t, n.Question, "sour")

	_, ok = tree.NodeByID("missing")
	assert.False(t, ok)
}

func TestEveryNextResolvesAndNoSelfLoops(t *testing.T) {
	tree := newTestTree(t)
	for _, n := range tree.Nodes() {
		for _, a := range n.Answers {
			if a.Kind() != domain.AnswerBranch {
				continue
			}
			assert.NotEqual(t, n.ID, a.Next)
			_, ok := tree.NodeByID(a.Next)
			assert.True(t, ok, "%s -> %s", n.ID, a.Next)
		}
	}
}

func TestLeaves(t *testing.T) {
	tree := newTestTree(t)
	leaves := tree.Leaves()
	assert.Len(t, leaves, 7)
	for _, n := range leaves {
		assert.True(t, n.IsTerminal())
	}
}

func TestValidateFindsProblems(t *testing.T) {
	leaf := domain.Answer{Label: "fix", Solution: "do it"}

	tests := []struct {
		name  string
		nodes []domain.Node
		want  string
	}{
		{
			name: "dangling next",
			nodes: []domain.Node{
				{ID: "root", Question: "q", Answers: []domain.Answer{{Label: "go", Next: "ghost"}}},
			},
			want: `unknown node "ghost"`,
		},
		{
			name: "self loop",
			nodes: []domain.Node{
				{ID: "root", Question: "q", Answers: []domain.Answer{{Label: "again", Next: "root"}, leaf}},
			},
			want: "own node",
		},
		{
			name: "cycle",
			nodes: []domain.Node{
				{ID: "root", Question: "q", Answers: []domain.Answer{{Label: "a", Next: "a"}}},
				{ID: "a", Question: "q", Answers: []domain.Answer{{Label: "b", Next: "b"}}},
				{ID: "b", Question: "q", Answers: []domain.Answer{{Label: "back", Next: "a"}}},
			},
			want: "cycle: a -> b -> a",
		},
		{
			name: "duplicate id",
			nodes: []domain.Node{
				{ID: "root", Question: "q", Answers: []domain.Answer{leaf}},
				{ID: "root", Question: "q2", Answers: []domain.Answer{leaf}},
			},
			want: "duplicate id",
		},
		{
			name: "both next and solution",
			nodes: []domain.Node{
				{ID: "root", Question: "q", Answers: []domain.Answer{{Label: "x", Next: "a", Solution: "s"}}},
				{ID: "a", Question: "q", Answers: []domain.Answer{leaf}},
			},
			want: "both next and solution",
		},
		{
			name: "empty question and label",
			nodes: []domain.Node{
				{ID: "root", Answers: []domain.Answer{{Solution: "s"}}},
			},
			want: "empty question",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := quietTree(tt.nodes...).Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrIntegrity))
			assert.False(t, errors.Is(err, domain.ErrRootMissing))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUnreachableIsWarning(t *testing.T) {
	leaf := domain.Answer{Label: "fix", Solution: "do it"}
	tree := quietTree(
		domain.Node{ID: "root", Question: "q", Answers: []domain.Answer{leaf}},
		domain.Node{ID: "orphan", Question: "q", Answers: []domain.Answer{leaf}},
	)

	require.NoError(t, tree.Validate())

	problems := tree.Check()
	require.Len(t, problems, 1)
	assert.True(t, problems[0].Warning)
	assert.Equal(t, "orphan", problems[0].NodeID)
	assert.True(t, strings.HasPrefix(problems[0].String(), "warning:"))
}
