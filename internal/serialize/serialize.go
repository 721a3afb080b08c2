//
// Copyright (c) 2011-2019 Canonical Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serialize walks a document.Document and feeds the equivalent
// event stream to an internal/emitter.Emitter, assigning anchors to
// shared subtrees and detecting reference cycles along the way.
package serialize

import (
	"fmt"

	"github.com/kadlec/yamlcore/internal/document"
	"github.com/kadlec/yamlcore/internal/emitter"
	"github.com/kadlec/yamlcore/internal/resolve"
	"github.com/kadlec/yamlcore/internal/yamlh"
)

// Serializer emits the node graph of a document.Document as a stream of
// events on the wrapped emitter.
type Serializer struct {
	emitter *emitter.Emitter
	doc     *document.Document
	anchors map[int]string
	emitted map[int]bool
	onPath  map[int]bool
}

// New wraps an emitter so documents can be dumped through it.
func New(e *emitter.Emitter) *Serializer {
	return &Serializer{emitter: e}
}

// SerializeError reports a problem found while walking the node graph,
// distinct from an error returned by the underlying emitter.
type SerializeError struct {
	Problem string
}

func (e *SerializeError) Error() string {
	return "yaml: " + e.Problem
}

// Open emits STREAM-START. Callers that serialize more than one document
// onto the same emitter call it once, Document per document, then Close.
func (s *Serializer) Open() error {
	return s.emitter.Emit(&yamlh.Event{Type: yamlh.STREAM_START_EVENT, Encoding: yamlh.UTF8_ENCODING}, false)
}

// Close emits STREAM-END.
func (s *Serializer) Close() error {
	return s.emitter.Emit(&yamlh.Event{Type: yamlh.STREAM_END_EVENT}, true)
}

// Document serializes one document's node graph as DOCUMENT-START ...
// DOCUMENT-END.
func (s *Serializer) Document(doc *document.Document) error {
	s.doc = doc
	s.anchors = make(map[int]string)
	s.emitted = make(map[int]bool)
	s.onPath = make(map[int]bool)

	if doc.Root != 0 {
		if err := s.countRefs(doc.Root, map[int]bool{}); err != nil {
			return err
		}
	}

	if err := s.emitter.Emit(&yamlh.Event{Type: yamlh.DOCUMENT_START_EVENT, Implicit: true}, false); err != nil {
		return err
	}
	if doc.Root != 0 {
		if err := s.node(doc.Root); err != nil {
			return err
		}
	}
	return s.emitter.Emit(&yamlh.Event{Type: yamlh.DOCUMENT_END_EVENT, Implicit: true}, false)
}

// countRefs walks the graph once, counting how many times each node is
// reached as a child of another node. A node reached a second time is
// shared and will need an anchor; its own children are only descended
// into on the first visit. ancestors guards against cycles, which the
// node arena's DAG contract forbids but a hand-built Document could
// still introduce.
func (s *Serializer) countRefs(id int, ancestors map[int]bool) error {
	if ancestors[id] {
		return &SerializeError{Problem: "cycle detected while serializing document"}
	}
	if s.doc.Ref(id) > 1 {
		return nil
	}
	ancestors[id] = true
	defer delete(ancestors, id)

	n := s.doc.Node(id)
	switch n.Kind {
	case document.SequenceNode:
		for _, item := range n.Items {
			if err := s.countRefs(item, ancestors); err != nil {
				return err
			}
		}
	case document.MappingNode:
		for _, pair := range n.Pairs {
			if err := s.countRefs(pair.Key, ancestors); err != nil {
				return err
			}
			if err := s.countRefs(pair.Value, ancestors); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Serializer) anchorFor(id int) (name string, isNew bool) {
	if s.doc.Refcount(id) < 2 {
		return "", false
	}
	if name, ok := s.anchors[id]; ok {
		return name, false
	}
	name = fmt.Sprintf("id%03d", id)
	s.anchors[id] = name
	return name, true
}

func (s *Serializer) node(id int) error {
	name, isNew := s.anchorFor(id)
	if !isNew && s.emitted[id] {
		return s.emitter.Emit(&yamlh.Event{Type: yamlh.ALIAS_EVENT, Anchor: []byte(name)}, false)
	}
	s.emitted[id] = true

	n := s.doc.Node(id)
	switch n.Kind {
	case document.ScalarNode:
		return s.scalar(n, name)
	case document.SequenceNode:
		return s.sequence(n, name)
	case document.MappingNode:
		return s.mapping(n, name)
	default:
		return &SerializeError{Problem: fmt.Sprintf("unknown node kind %v", n.Kind)}
	}
}

func (s *Serializer) scalar(n *document.Node, anchor string) error {
	tag := resolve.LongTag(n.Tag)
	implicit := n.Tag == "" || n.Tag == resolve.StrTag
	return s.emitter.Emit(&yamlh.Event{
		Type:            yamlh.SCALAR_EVENT,
		Anchor:          []byte(anchor),
		Tag:             []byte(tag),
		Value:           []byte(n.Value),
		Implicit:        implicit,
		Quoted_implicit: implicit,
		Style:           yamlh.YamlStyle(n.ScalarStyle),
	}, false)
}

func (s *Serializer) sequence(n *document.Node, anchor string) error {
	style := yamlh.YamlStyle(yamlh.BLOCK_SEQUENCE_STYLE)
	if n.Flow {
		style = yamlh.YamlStyle(yamlh.FLOW_SEQUENCE_STYLE)
	}
	tag := resolve.LongTag(n.Tag)
	implicit := n.Tag == "" || n.Tag == resolve.SeqTag
	if err := s.emitter.Emit(&yamlh.Event{
		Type: yamlh.SEQUENCE_START_EVENT, Anchor: []byte(anchor), Tag: []byte(tag),
		Implicit: implicit, Style: style,
	}, false); err != nil {
		return err
	}
	for _, item := range n.Items {
		if err := s.node(item); err != nil {
			return err
		}
	}
	return s.emitter.Emit(&yamlh.Event{Type: yamlh.SEQUENCE_END_EVENT}, false)
}

func (s *Serializer) mapping(n *document.Node, anchor string) error {
	style := yamlh.YamlStyle(yamlh.BLOCK_MAPPING_STYLE)
	if n.Flow {
		style = yamlh.YamlStyle(yamlh.FLOW_MAPPING_STYLE)
	}
	tag := resolve.LongTag(n.Tag)
	implicit := n.Tag == "" || n.Tag == resolve.MapTag
	if err := s.emitter.Emit(&yamlh.Event{
		Type: yamlh.MAPPING_START_EVENT, Anchor: []byte(anchor), Tag: []byte(tag),
		Implicit: implicit, Style: style,
	}, false); err != nil {
		return err
	}
	for _, pair := range n.Pairs {
		if err := s.node(pair.Key); err != nil {
			return err
		}
		if err := s.node(pair.Value); err != nil {
			return err
		}
	}
	return s.emitter.Emit(&yamlh.Event{Type: yamlh.MAPPING_END_EVENT}, false)
}
