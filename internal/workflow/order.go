package workflow

// ExecutionOrder computes a dependency-respecting linear order of node ids
// using Kahn's algorithm. Only connections with both endpoints in the node
// set participate. The queue is seeded with zero in-degree nodes in
// node-list order, and nodes join the queue the moment their in-degree
// reaches zero; this tie-break is what makes the order reproducible and must
// not change.
//
// If the graph contains a cycle the affected nodes never reach in-degree
// zero and are left out: the result is shorter than the node count, which is
// the caller's signal to warn.
func (wf *Workflow) ExecutionOrder() []string {
	adjacency := make(map[string][]string, len(wf.Nodes))
	inDegree := make(map[string]int, len(wf.Nodes))
	for i := range wf.Nodes {
		id := wf.Nodes[i].ID
		adjacency[id] = nil
		inDegree[id] = 0
	}

	for _, conn := range wf.Connections {
		if _, ok := inDegree[conn.SourceID]; !ok {
			continue
		}
		if _, ok := inDegree[conn.DestinationID]; !ok {
			continue
		}
		adjacency[conn.SourceID] = append(adjacency[conn.SourceID], conn.DestinationID)
		inDegree[conn.DestinationID]++
	}

	queue := make([]string, 0, len(wf.Nodes))
	for i := range wf.Nodes {
		if inDegree[wf.Nodes[i].ID] == 0 {
			queue = append(queue, wf.Nodes[i].ID)
		}
	}

	order := make([]string, 0, len(wf.Nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, next := range adjacency[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	return order
}

// HasCycle reports whether some nodes are unschedulable because they sit on
// a cycle.
func (wf *Workflow) HasCycle() bool {
	return len(wf.ExecutionOrder()) < len(wf.Nodes)
}
