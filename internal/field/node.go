package field

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type nodeKind uint8

const (
	nodeNull nodeKind = iota
	nodeString
	nodeNumber
	nodeBool
	nodeObject
	nodeArray
)

// Node is a decoded JSON document. Object member order is kept so the
// canonical form of a composite matches its source serialization.
type Node struct {
	kind   nodeKind
	text   string // string value, number literal, bool literal, or canonical JSON
	num    float64
	keys   []string
	fields map[string]*Node
	items  []*Node
}

// Decode parses one JSON document into a Node tree.
func Decode(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := decodeNode(dec)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode document: trailing data")
	}
	return n, nil
}

func decodeNode(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return &Node{kind: nodeNull}, nil
	case string:
		return &Node{kind: nodeString, text: t}, nil
	case bool:
		return &Node{kind: nodeBool, text: strconv.FormatBool(t)}, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", t.String(), err)
		}
		return &Node{kind: nodeNumber, text: t.String(), num: f}, nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	n := &Node{kind: nodeObject, fields: make(map[string]*Node)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key %v is not a string", tok)
		}
		child, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}
		if _, dup := n.fields[key]; !dup {
			n.keys = append(n.keys, key)
		}
		n.fields[key] = child
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	n.text = n.canonical()
	return n, nil
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	n := &Node{kind: nodeArray}
	for dec.More() {
		child, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}
		n.items = append(n.items, child)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	n.text = n.canonical()
	return n, nil
}

func (n *Node) canonical() string {
	var b strings.Builder
	n.writeJSON(&b)
	return b.String()
}

func (n *Node) writeJSON(b *strings.Builder) {
	switch n.kind {
	case nodeNull:
		b.WriteString("null")
	case nodeString:
		b.WriteString(quote(n.text))
	case nodeNumber, nodeBool:
		b.WriteString(n.text)
	case nodeObject:
		b.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(k))
			b.WriteByte(':')
			n.fields[k].writeJSON(b)
		}
		b.WriteByte('}')
	case nodeArray:
		b.WriteByte('[')
		for i, it := range n.items {
			if i > 0 {
				b.WriteByte(',')
			}
			it.writeJSON(b)
		}
		b.WriteByte(']')
	}
}

// quote encodes s as a JSON string without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// member returns the named child of an object, or the numbered element of an
// array when name is all digits. Nil-safe.
func (n *Node) member(name string) *Node {
	if n == nil {
		return nil
	}
	switch n.kind {
	case nodeObject:
		return n.fields[name]
	case nodeArray:
		idx, err := strconv.Atoi(name)
		if err != nil || idx < 0 {
			return nil
		}
		return n.element(idx)
	}
	return nil
}

func (n *Node) element(idx int) *Node {
	if n == nil || n.kind != nodeArray || idx < 0 || idx >= len(n.items) {
		return nil
	}
	return n.items[idx]
}

func (n *Node) value() Value {
	if n == nil {
		return Missing
	}
	switch n.kind {
	case nodeString, nodeBool:
		return TextValue(n.text)
	case nodeNumber:
		return numberLiteral(n.text, n.num)
	case nodeObject, nodeArray:
		return CompositeValue(n.text)
	}
	return Missing
}

// JSON returns the canonical compact serialization of the node.
func (n *Node) JSON() string {
	if n == nil {
		return "null"
	}
	if n.kind == nodeObject || n.kind == nodeArray {
		return n.text
	}
	return n.canonical()
}
