package descriptor

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func loadDocument(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %v", path)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("unexpected document structure in %v", path)
	}
	return doc.Content[0], nil
}

func writeDocument(path string, root *yaml.Node) error {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	err := encoder.Encode(root)
	if err != nil {
		return err
	}
	err = encoder.Close()
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, buffer.Bytes(), 0o644)
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func sequenceItems(node *yaml.Node) []*yaml.Node {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	return node.Content
}

func scalarValue(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

func newSequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func newScalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func appendMappingKey(node *yaml.Node, key string, value *yaml.Node) *yaml.Node {
	node.Content = append(node.Content, newScalar(key), value)
	return value
}

func appendScalar(seq *yaml.Node, value string) bool {
	for _, item := range seq.Content {
		if item.Value == value {
			return false
		}
	}
	seq.Content = append(seq.Content, newScalar(value))
	return true
}

func removeScalar(seq *yaml.Node, value string) bool {
	for i, item := range seq.Content {
		if item.Value == value {
			seq.Content = append(seq.Content[:i], seq.Content[i+1:]...)
			return true
		}
	}
	return false
}
