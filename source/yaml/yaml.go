// Package yaml converts YAML documents into the binder's JSON value tree.
//
// Only the JSON-compatible subset of YAML is accepted: mapping keys must be
// scalars and floats must be finite.
package yaml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/reoring/lightjson/jsontree"
)

// Name identifies this driver in configuration.
const Name = "yaml"

// ErrEmptyDocument is returned when the input holds no YAML document.
var ErrEmptyDocument = errors.New("yaml: empty document")

// maxAliasDepth bounds alias expansion so that self-referencing anchors fail.
const maxAliasDepth = 64

// Decode parses the first YAML document in data.
func Decode(data []byte) (jsontree.Value, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return jsontree.Value{}, err
	}
	if doc.Kind == 0 || (doc.Kind == yamlv3.DocumentNode && len(doc.Content) == 0) {
		return jsontree.Value{}, ErrEmptyDocument
	}
	return convert(&doc, 0)
}

func convert(n *yamlv3.Node, aliases int) (jsontree.Value, error) {
	switch n.Kind {
	case yamlv3.DocumentNode:
		return convert(n.Content[0], aliases)
	case yamlv3.AliasNode:
		if aliases >= maxAliasDepth || n.Alias == nil {
			return jsontree.Value{}, fmt.Errorf("yaml: line %d: alias expansion too deep", n.Line)
		}
		return convert(n.Alias, aliases+1)
	case yamlv3.MappingNode:
		var b jsontree.ObjectBuilder
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yamlv3.ScalarNode {
				return jsontree.Value{}, fmt.Errorf("yaml: line %d: mapping key must be a scalar", k.Line)
			}
			v, err := convert(n.Content[i+1], aliases)
			if err != nil {
				return jsontree.Value{}, err
			}
			b.Set(k.Value, v)
		}
		return b.Build(), nil
	case yamlv3.SequenceNode:
		elems := make([]jsontree.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := convert(c, aliases)
			if err != nil {
				return jsontree.Value{}, err
			}
			elems = append(elems, v)
		}
		return jsontree.Array(elems), nil
	case yamlv3.ScalarNode:
		return scalar(n)
	}
	return jsontree.Value{}, fmt.Errorf("yaml: line %d: unsupported node kind %d", n.Line, n.Kind)
}

func scalar(n *yamlv3.Node) (jsontree.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return jsontree.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return jsontree.Value{}, err
		}
		return jsontree.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return jsontree.Number(json.Number(strconv.FormatInt(i, 10))), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return jsontree.Number(json.Number(strconv.FormatUint(u, 10))), nil
		}
		return jsontree.Value{}, fmt.Errorf("yaml: line %d: integer %q out of range", n.Line, n.Value)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return jsontree.Value{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return jsontree.Value{}, fmt.Errorf("yaml: line %d: %q has no JSON representation", n.Line, n.Value)
		}
		return jsontree.Number(json.Number(strconv.FormatFloat(f, 'g', -1, 64))), nil
	default:
		return jsontree.String(n.Value), nil
	}
}
