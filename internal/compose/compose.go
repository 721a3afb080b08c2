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

// Package compose builds a document.Document out of the event stream
// produced by internal/parser, resolving anchors and aliases and
// defaulting untagged nodes to the failsafe schema tags.
package compose

import (
	"fmt"

	"github.com/kadlec/yamlcore/internal/document"
	"github.com/kadlec/yamlcore/internal/parser"
	"github.com/kadlec/yamlcore/internal/resolve"
	"github.com/kadlec/yamlcore/internal/yamlh"
)

// Composer turns one parser's event stream into a sequence of documents.
// An anchor table is kept per document and reset at DocumentEnd, matching
// the lifecycle of YAML's own anchor scoping.
type Composer struct {
	parser  *parser.YamlParser
	event   *yamlh.Event
	doneTop bool
	anchors map[string]int
}

// New wraps a parser so its events can be composed into documents.
func New(p *parser.YamlParser) *Composer {
	return &Composer{parser: p}
}

// ComposerError reports an inconsistency in the node graph being built:
// a duplicate anchor definition or a reference to an anchor that was
// never defined in the current document.
type ComposerError struct {
	Problem string
	Mark    yamlh.Position
}

func (e *ComposerError) Error() string {
	return fmt.Sprintf("yaml: line %d: %s", e.Mark.Line+1, e.Problem)
}

func (c *Composer) next() error {
	ev, err := parser.Parse(c.parser)
	if err != nil {
		return err
	}
	c.event = ev
	return nil
}

func (c *Composer) expect(t yamlh.EventType) error {
	if c.event == nil {
		if err := c.next(); err != nil {
			return err
		}
	}
	if c.event.Type != t {
		return fmt.Errorf("yaml: expected %s event but got %s", t, c.event.Type)
	}
	c.event = nil
	return nil
}

// Next composes the next document from the stream. It returns (nil, nil)
// once the stream is exhausted (STREAM_END reached with no content).
func (c *Composer) Next() (*document.Document, error) {
	if !c.doneTop {
		if err := c.expect(yamlh.STREAM_START_EVENT); err != nil {
			return nil, err
		}
		c.doneTop = true
	}
	if c.event == nil {
		if err := c.next(); err != nil {
			return nil, err
		}
	}
	if c.event.Type == yamlh.STREAM_END_EVENT {
		return nil, nil
	}

	c.anchors = make(map[string]int)
	if err := c.expect(yamlh.DOCUMENT_START_EVENT); err != nil {
		return nil, err
	}

	doc := &document.Document{}
	root, err := c.composeNode(doc)
	if err != nil {
		return nil, err
	}
	doc.Root = root

	if err := c.expect(yamlh.DOCUMENT_END_EVENT); err != nil {
		return nil, err
	}
	return doc, nil
}

// composeNode dispatches on the next event's type and appends the
// resulting node(s) to doc, returning the new node's id.
func (c *Composer) composeNode(doc *document.Document) (int, error) {
	if c.event == nil {
		if err := c.next(); err != nil {
			return 0, err
		}
	}
	switch c.event.Type {
	case yamlh.SCALAR_EVENT:
		return c.composeScalar(doc)
	case yamlh.ALIAS_EVENT:
		return c.composeAlias(doc)
	case yamlh.SEQUENCE_START_EVENT:
		return c.composeSequence(doc)
	case yamlh.MAPPING_START_EVENT:
		return c.composeMapping(doc)
	default:
		return 0, fmt.Errorf("yaml: unexpected %s event while composing a node", c.event.Type)
	}
}

func (c *Composer) registerAnchor(anchor []byte, id int, mark yamlh.Position) error {
	if len(anchor) == 0 {
		return nil
	}
	name := string(anchor)
	if _, ok := c.anchors[name]; ok {
		return &ComposerError{Problem: fmt.Sprintf("found duplicate anchor '%s'", name), Mark: mark}
	}
	c.anchors[name] = id
	return nil
}

func (c *Composer) composeScalar(doc *document.Document) (int, error) {
	ev := c.event
	tag := string(ev.Tag)
	if tag == "" || tag == "!" {
		tag = resolve.DefaultTag(document.ScalarNode)
	} else {
		tag = resolve.ShortTag(tag)
	}
	id := doc.Add(document.Node{
		Kind:        document.ScalarNode,
		Tag:         tag,
		Value:       string(ev.Value),
		ScalarStyle: ev.Scalar_style(),
	})
	if err := c.registerAnchor(ev.Anchor, id, ev.Start_mark); err != nil {
		return 0, err
	}
	if len(ev.Anchor) > 0 {
		doc.Node(id).Anchor = string(ev.Anchor)
	}
	if err := c.expect(yamlh.SCALAR_EVENT); err != nil {
		return 0, err
	}
	return id, nil
}

func (c *Composer) composeAlias(doc *document.Document) (int, error) {
	ev := c.event
	name := string(ev.Anchor)
	id, ok := c.anchors[name]
	if !ok {
		return 0, &ComposerError{Problem: fmt.Sprintf("unknown anchor '%s' referenced", name), Mark: ev.Start_mark}
	}
	if err := c.expect(yamlh.ALIAS_EVENT); err != nil {
		return 0, err
	}
	return id, nil
}

func (c *Composer) composeSequence(doc *document.Document) (int, error) {
	ev := c.event
	tag := string(ev.Tag)
	if tag == "" {
		tag = resolve.DefaultTag(document.SequenceNode)
	} else {
		tag = resolve.ShortTag(tag)
	}
	id := doc.Add(document.Node{
		Kind: document.SequenceNode,
		Tag:  tag,
		Flow: ev.Sequence_style()&yamlh.FLOW_SEQUENCE_STYLE != 0,
	})
	if err := c.registerAnchor(ev.Anchor, id, ev.Start_mark); err != nil {
		return 0, err
	}
	if len(ev.Anchor) > 0 {
		doc.Node(id).Anchor = string(ev.Anchor)
	}
	if err := c.expect(yamlh.SEQUENCE_START_EVENT); err != nil {
		return 0, err
	}
	for {
		if c.event == nil {
			if err := c.next(); err != nil {
				return 0, err
			}
		}
		if c.event.Type == yamlh.SEQUENCE_END_EVENT {
			break
		}
		item, err := c.composeNode(doc)
		if err != nil {
			return 0, err
		}
		doc.Node(id).Items = append(doc.Node(id).Items, item)
	}
	if err := c.expect(yamlh.SEQUENCE_END_EVENT); err != nil {
		return 0, err
	}
	return id, nil
}

func (c *Composer) composeMapping(doc *document.Document) (int, error) {
	ev := c.event
	tag := string(ev.Tag)
	if tag == "" {
		tag = resolve.DefaultTag(document.MappingNode)
	} else {
		tag = resolve.ShortTag(tag)
	}
	id := doc.Add(document.Node{
		Kind: document.MappingNode,
		Tag:  tag,
		Flow: ev.Mapping_style()&yamlh.FLOW_MAPPING_STYLE != 0,
	})
	if err := c.registerAnchor(ev.Anchor, id, ev.Start_mark); err != nil {
		return 0, err
	}
	if len(ev.Anchor) > 0 {
		doc.Node(id).Anchor = string(ev.Anchor)
	}
	if err := c.expect(yamlh.MAPPING_START_EVENT); err != nil {
		return 0, err
	}
	for {
		if c.event == nil {
			if err := c.next(); err != nil {
				return 0, err
			}
		}
		if c.event.Type == yamlh.MAPPING_END_EVENT {
			break
		}
		key, err := c.composeNode(doc)
		if err != nil {
			return 0, err
		}
		value, err := c.composeNode(doc)
		if err != nil {
			return 0, err
		}
		doc.Node(id).Pairs = append(doc.Node(id).Pairs, document.Pair{Key: key, Value: value})
	}
	if err := c.expect(yamlh.MAPPING_END_EVENT); err != nil {
		return 0, err
	}
	return id, nil
}
