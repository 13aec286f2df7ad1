package input

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RootKey is the key of the item returned by Parse and LoadFile.
const RootKey = "input"

// Parse builds an item tree from a YAML (or JSON) document. Mapping order is
// preserved. A sequence of mappings expands into one child per element, all
// sharing the sequence key; a sequence of scalars becomes a single value with
// the elements separated by spaces.
func Parse(data []byte) (*Item, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	root := &Item{key: RootKey}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return root, nil
	}
	n := doc.Content[0]
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("input document must be a mapping, got %s", kindName(n.Kind))
	}
	if err := addMapping(root, n); err != nil {
		return nil, err
	}
	return root, nil
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func addMapping(parent *Item, n *yaml.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if err := addNode(parent, key, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func addNode(parent *Item, key string, n *yaml.Node) error {
	switch n.Kind {
	case yaml.AliasNode:
		return addNode(parent, key, n.Alias)
	case yaml.ScalarNode:
		parent.Add(New(key, n.Value))
	case yaml.MappingNode:
		child := &Item{key: key}
		if err := addMapping(child, n); err != nil {
			return err
		}
		parent.Add(child)
	case yaml.SequenceNode:
		if scalars(n) {
			vals := make([]string, len(n.Content))
			for i, c := range n.Content {
				vals[i] = c.Value
			}
			parent.Add(New(key, strings.Join(vals, " ")))
			return nil
		}
		for _, c := range n.Content {
			if err := addNode(parent, key, c); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("key %s: unsupported node %s", key, kindName(n.Kind))
	}
	return nil
}

func scalars(n *yaml.Node) bool {
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode {
			return false
		}
	}
	return true
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return fmt.Sprintf("kind %d", k)
}
