package generate

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// appendMapping adds one `key: {fields...}` entry to the YAML mapping file
// at path, creating the file when absent. The existing document is kept as
// parsed nodes rather than re-marshaled structs, so comments and the order
// of earlier entries survive. Long prose fields use folded scalars.
func appendMapping(path, key string, fields []yamlField) error {
	doc, root, err := loadMappingDoc(path)
	if err != nil {
		return err
	}

	for i := 0; i < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			return fmt.Errorf("%q already exists in %s", key, path)
		}
	}

	entry := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range fields {
		style := yaml.Style(0)
		if f.Folded {
			style = yaml.FoldedStyle
		}
		entry.Content = append(entry.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value, Style: style},
		)
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		entry,
	)

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

type yamlField struct {
	Name   string
	Value  string
	Folded bool
}

// loadMappingDoc parses path into a document node with a mapping root,
// synthesizing an empty one when the file is missing or blank.
func loadMappingDoc(path string) (doc, root *yaml.Node, err error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc = &yaml.Node{}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		root = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		doc = &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
		return doc, root, nil
	}
	root = doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("%s: expected a mapping at the top level", path)
	}
	return doc, root, nil
}

// readMapping returns the file's top-level keys in order and, per key, its
// scalar fields. Used by export to round-trip a project back to a blueprint.
func readMapping(path string) (keys []string, values map[string]map[string]string, err error) {
	_, root, err := loadMappingDoc(path)
	if err != nil {
		return nil, nil, err
	}
	values = make(map[string]map[string]string)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		entry := root.Content[i+1]
		fields := make(map[string]string)
		if entry.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(entry.Content); j += 2 {
				fields[entry.Content[j].Value] = entry.Content[j+1].Value
			}
		}
		keys = append(keys, key)
		values[key] = fields
	}
	return keys, values, nil
}
