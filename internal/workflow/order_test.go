package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graph(nodeIDs []string, edges [][2]string) *Workflow {
	wf := &Workflow{nodeIndex: make(map[string]int)}
	for i, id := range nodeIDs {
		wf.nodeIndex[id] = i
		wf.Nodes = append(wf.Nodes, Node{ID: id})
	}
	for _, e := range edges {
		wf.Connections = append(wf.Connections, Connection{SourceID: e[0], DestinationID: e[1], Port: DefaultPort})
	}
	return wf
}

func TestExecutionOrder_Chain(t *testing.T) {
	wf := graph([]string{"1", "2", "3"}, [][2]string{{"1", "2"}, {"2", "3"}})

	assert.Equal(t, []string{"1", "2", "3"}, wf.ExecutionOrder())
	assert.False(t, wf.HasCycle())
}

func TestExecutionOrder_TieBreakFollowsNodeOrder(t *testing.T) {
	// Two independent roots feeding one sink: roots come out in node-list
	// order regardless of connection order.
	wf := graph([]string{"b", "a", "sink"}, [][2]string{{"a", "sink"}, {"b", "sink"}})

	assert.Equal(t, []string{"b", "a", "sink"}, wf.ExecutionOrder())
}

func TestExecutionOrder_IgnoresDanglingConnections(t *testing.T) {
	wf := graph([]string{"1", "2"}, [][2]string{{"1", "2"}, {"ghost", "1"}, {"2", "phantom"}})

	assert.Equal(t, []string{"1", "2"}, wf.ExecutionOrder())
	assert.False(t, wf.HasCycle())
}

func TestExecutionOrder_CycleYieldsPartialOrder(t *testing.T) {
	wf := graph([]string{"1", "2", "3", "4"}, [][2]string{
		{"1", "2"},
		{"2", "3"},
		{"3", "2"}, // cycle between 2 and 3
		{"1", "4"},
	})

	order := wf.ExecutionOrder()
	require.True(t, wf.HasCycle())

	// The acyclic part still schedules.
	assert.Contains(t, order, "1")
	assert.Contains(t, order, "4")
	assert.NotContains(t, order, "2")
	assert.NotContains(t, order, "3")
}

func TestExecutionOrder_Empty(t *testing.T) {
	wf := graph(nil, nil)

	assert.Empty(t, wf.ExecutionOrder())
	assert.False(t, wf.HasCycle())
}

func TestExecutionOrder_Deterministic(t *testing.T) {
	wf := graph([]string{"5", "3", "8", "1"}, [][2]string{{"5", "8"}, {"3", "8"}, {"8", "1"}})

	first := wf.ExecutionOrder()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, wf.ExecutionOrder())
	}
}
