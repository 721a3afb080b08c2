//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package document holds the node-graph representation a Composer builds
// from an event stream and a Serializer walks back into one. Nodes live in
// a flat arena and refer to each other by 1-based index rather than by
// pointer, so a Document can be copied, hashed, or persisted without
// worrying about pointer identity.
package document

import "github.com/kadlec/yamlcore/internal/yamlh"

// Kind identifies which of the three failsafe node shapes a Node holds.
type Kind int

const (
	ScalarNode Kind = iota
	SequenceNode
	MappingNode
)

func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	default:
		return "unknown"
	}
}

// Pair is one key/value edge of a mapping node, referring to the key and
// value nodes by their arena index.
type Pair struct {
	Key   int
	Value int
}

// Node is one vertex of the composed graph. Only the fields relevant to
// its Kind are meaningful: Value/ScalarStyle for ScalarNode, Items for
// SequenceNode, Pairs for MappingNode.
type Node struct {
	Kind   Kind
	Tag    string
	Anchor string // anchor name this node was defined under, if any

	Value       string                 // ScalarNode only
	ScalarStyle yamlh.YamlScalarStyle  // ScalarNode only
	Flow        bool                   // sequence/mapping in flow style

	Items []int  // SequenceNode only, 1-based child indices
	Pairs []Pair // MappingNode only

	refcount int // number of incoming alias/parent edges, tracked by the serializer
}

// Document is one parsed or to-be-emitted YAML document: an arena of nodes
// plus the root index. Root is 0 for an empty document (no content).
type Document struct {
	Nodes []Node
	Root  int
}

// Node returns the node at the given 1-based id. It panics on an
// out-of-range id, which indicates a bug in the composer or caller.
func (d *Document) Node(id int) *Node {
	return &d.Nodes[id-1]
}

// Add appends a node to the arena and returns its 1-based id.
func (d *Document) Add(n Node) int {
	d.Nodes = append(d.Nodes, n)
	return len(d.Nodes)
}

// Ref increments the reference count of the node at id, returning the
// count after the increment. The serializer uses this to decide whether a
// node needs an anchor.
func (d *Document) Ref(id int) int {
	d.Nodes[id-1].refcount++
	return d.Nodes[id-1].refcount
}

// Refcount reports how many incoming edges a node has accumulated so far.
func (d *Document) Refcount(id int) int {
	return d.Nodes[id-1].refcount
}
