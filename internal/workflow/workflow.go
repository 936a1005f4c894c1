package workflow

// ConfigValue is the recursive configuration tree extracted from a node's
// Configuration element. Values are one of: string (leaf text), ConfigValue
// (nested element), map[string]string (leaf attributes) or nil (empty leaf).
type ConfigValue map[string]any

// Lookup returns the first key that holds a string value.
func (c ConfigValue) Lookup(keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := c[key].(string); ok {
			return s, true
		}
	}
	return "", false
}

// LookupOr is Lookup with a fallback value.
func (c ConfigValue) LookupOr(fallback string, keys ...string) string {
	if s, ok := c.Lookup(keys...); ok {
		return s
	}
	return fallback
}

// Position is a node's location on the design canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a single typed processing unit in the workflow graph.
// Type is resolved exactly once when the workflow is parsed and is
// immutable afterwards.
type Node struct {
	ID         string      `json:"id"`
	Type       ToolType    `json:"type"`
	Plugin     string      `json:"plugin"`
	Macro      string      `json:"macro,omitempty"`
	Config     ConfigValue `json:"config"`
	Annotation string      `json:"annotation,omitempty"`
	Position   *Position   `json:"position,omitempty"`
}

// Connection is a directed edge between two nodes' named ports. Endpoints
// may reference ids absent from the node set; such dangling edges are
// tolerated and simply excluded from the ordering graph.
type Connection struct {
	SourceID      string `json:"sourceId"`
	DestinationID string `json:"destinationId"`
	Port          string `json:"port"`
}

// Metadata is the best-effort workflow metadata block.
type Metadata struct {
	Version      string `json:"version"`
	Author       string `json:"author,omitempty"`
	Description  string `json:"description,omitempty"`
	CreationDate string `json:"creationDate,omitempty"`
}

// Workflow owns the parsed graph: nodes in document order, connections in
// document order, and derived metadata. A Workflow is a plain value scoped
// to one conversion run; concurrent conversions each parse their own.
type Workflow struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
	Meta        Metadata     `json:"metadata"`

	nodeIndex map[string]int
}

// NodeByID looks up a node by its identifier.
func (wf *Workflow) NodeByID(id string) (*Node, bool) {
	i, ok := wf.nodeIndex[id]
	if !ok {
		return nil, false
	}
	return &wf.Nodes[i], true
}

// SourceIDs lists the ids feeding into the given node, in connection-list
// order. Dangling source ids are included; callers decide how to treat them.
func (wf *Workflow) SourceIDs(id string) []string {
	var sources []string
	for _, conn := range wf.Connections {
		if conn.DestinationID == id {
			sources = append(sources, conn.SourceID)
		}
	}
	return sources
}

// DestinationIDs lists the ids this node feeds into, in connection-list order.
func (wf *Workflow) DestinationIDs(id string) []string {
	var destinations []string
	for _, conn := range wf.Connections {
		if conn.SourceID == id {
			destinations = append(destinations, conn.DestinationID)
		}
	}
	return destinations
}
