package workflow

import (
	"strconv"
	"strings"
)

// DefaultPort is the port name used when a connection carries none.
const DefaultPort = "Output"

// Parse builds a Workflow from a raw workflow document. On malformed input
// it returns an error and publishes no partial state. Structural oddities
// inside a well-formed document are tolerated: nodes without an identifier
// and connections missing an endpoint are dropped silently.
func Parse(raw []byte) (*Workflow, error) {
	root, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}

	wf := &Workflow{
		Meta:      extractMetadata(root),
		nodeIndex: make(map[string]int),
	}

	for _, el := range root.findAll("Node") {
		node, ok := buildNode(el)
		if !ok {
			continue
		}
		if _, dup := wf.nodeIndex[node.ID]; dup {
			// Node ids must be unique; later duplicates are decorative.
			continue
		}
		wf.nodeIndex[node.ID] = len(wf.Nodes)
		wf.Nodes = append(wf.Nodes, node)
	}

	for _, el := range root.findAll("Connection") {
		origin := el.find("Origin")
		destination := el.find("Destination")
		if origin == nil || destination == nil {
			continue
		}
		src := strings.TrimSpace(origin.text)
		dst := strings.TrimSpace(destination.text)
		if src == "" || dst == "" {
			continue
		}
		port := el.attr("name")
		if port == "" {
			port = DefaultPort
		}
		wf.Connections = append(wf.Connections, Connection{
			SourceID:      src,
			DestinationID: dst,
			Port:          port,
		})
	}

	return wf, nil
}

// extractMetadata scans the optional properties/meta subtree. Absence of any
// part yields defaults, never an error.
func extractMetadata(root *element) Metadata {
	meta := Metadata{Version: "Unknown"}
	if v := root.attr("version"); v != "" {
		meta.Version = v
	}

	properties := root.find("Properties")
	if properties == nil {
		return meta
	}
	info := properties.find("MetaInfo")
	if info == nil {
		return meta
	}
	for _, child := range info.children {
		text := strings.TrimSpace(child.text)
		switch child.tag {
		case "Author":
			meta.Author = text
		case "Description":
			meta.Description = text
		case "CreationDate":
			meta.CreationDate = text
		}
	}
	return meta
}

// buildNode extracts one node. A node-shaped element without a ToolID is
// decorative markup, not an error.
func buildNode(el *element) (Node, bool) {
	id := el.attr("ToolID")
	if id == "" {
		return Node{}, false
	}

	var plugin, macro string
	if settings := el.find("EngineSettings"); settings != nil {
		plugin = settings.attr("EngineDll")
		macro = settings.attr("Macro")
	}
	// Engine-less tools (browse, text input) identify themselves through the
	// gui plugin reference instead.
	if plugin == "" {
		if gui := el.find("GuiSettings"); gui != nil {
			plugin = gui.attr("Plugin")
		}
	}

	config := ConfigValue{}
	var annotation string
	if properties := el.find("Properties"); properties != nil {
		if configuration := properties.find("Configuration"); configuration != nil {
			config = extractConfig(configuration)
		}
		if ann := properties.find("Annotation"); ann != nil {
			if name := ann.find("Name"); name != nil {
				annotation = strings.TrimSpace(name.text)
			}
		}
	}

	node := Node{
		ID:         id,
		Plugin:     plugin,
		Macro:      macro,
		Config:     config,
		Annotation: annotation,
		Position:   extractPosition(el),
	}
	node.Type = Classify(plugin, macro, config)
	return node, true
}

// extractConfig descends the configuration subtree. A leaf with text becomes
// a string, a leaf with only attributes becomes an attribute map, an empty
// leaf becomes nil, and a non-leaf recurses. Same-named siblings overwrite
// rather than accumulate; this matches the source schema's observed
// behavior and is preserved intentionally.
//
// Recursion depth is bounded by maxDocumentDepth, enforced at decode time.
func extractConfig(el *element) ConfigValue {
	config := make(ConfigValue, len(el.children))
	for _, child := range el.children {
		switch {
		case len(child.children) > 0:
			config[child.tag] = extractConfig(child)
		case strings.TrimSpace(child.text) != "":
			config[child.tag] = strings.TrimSpace(child.text)
		case len(child.attrs) > 0:
			attrs := make(map[string]string, len(child.attrs))
			for k, v := range child.attrs {
				attrs[k] = v
			}
			config[child.tag] = attrs
		default:
			config[child.tag] = nil
		}
	}
	return config
}

func extractPosition(el *element) *Position {
	gui := el.find("GuiSettings")
	if gui == nil {
		return nil
	}
	position := gui.find("Position")
	if position == nil {
		return nil
	}
	x, _ := strconv.ParseFloat(position.attr("x"), 64)
	y, _ := strconv.ParseFloat(position.attr("y"), 64)
	return &Position{X: x, Y: y}
}
