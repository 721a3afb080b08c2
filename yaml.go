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

// Package yaml exposes the Scanner/Parser/Emitter core and the
// Composer/Serializer document layer built on top of it. It intentionally
// stops short of reflection-based marshalling: callers that want to bind
// Go values should unmarshal from a Document, not from this package
// directly.
package yaml

import (
	"io"

	"github.com/kadlec/yamlcore/internal/compose"
	"github.com/kadlec/yamlcore/internal/document"
	"github.com/kadlec/yamlcore/internal/emitter"
	"github.com/kadlec/yamlcore/internal/parser"
	"github.com/kadlec/yamlcore/internal/serialize"
	"github.com/kadlec/yamlcore/internal/yamlh"
)

// Re-exported so callers never need to import the internal packages
// directly.
type (
	Encoding      = yamlh.Encoding
	LineBreak     = yamlh.Break
	Token         = yamlh.YamlToken
	Event         = yamlh.Event
	Document      = document.Document
	Node          = document.Node
	NodeKind      = document.Kind
	Pair          = document.Pair
	ScalarStyle   = yamlh.YamlScalarStyle
	ComposerError = compose.ComposerError
)

const (
	AnyEncoding = yamlh.ANY_ENCODING
	UTF8        = yamlh.UTF8_ENCODING
	UTF16LE     = yamlh.UTF16LE_ENCODING
	UTF16BE     = yamlh.UTF16BE_ENCODING

	AnyBreak  = yamlh.ANY_BREAK
	CRBreak   = yamlh.CR_BREAK
	LNBreak   = yamlh.LN_BREAK
	CRLNBreak = yamlh.CRLN_BREAK

	ScalarNode   = document.ScalarNode
	SequenceNode = document.SequenceNode
	MappingNode  = document.MappingNode

	PlainScalarStyle        = yamlh.PLAIN_SCALAR_STYLE
	SingleQuotedScalarStyle = yamlh.SINGLE_QUOTED_SCALAR_STYLE
	DoubleQuotedScalarStyle = yamlh.DOUBLE_QUOTED_SCALAR_STYLE
	LiteralScalarStyle      = yamlh.LITERAL_SCALAR_STYLE
	FoldedScalarStyle       = yamlh.FOLDED_SCALAR_STYLE
)

// Parser reads tokens, events, or whole documents from a byte stream. It
// is not safe for concurrent use; each goroutine should own its own
// Parser.
type Parser struct {
	p *parser.YamlParser
	c *compose.Composer
}

// NewParser creates a Parser reading from r. Call SetEncoding before the
// first Scan/Parse/Load call to skip BOM sniffing.
func NewParser(r io.Reader) *Parser {
	p := parser.New(r)
	return &Parser{p: p, c: compose.New(p)}
}

// NewParserFromBytes creates a Parser reading from an in-memory buffer.
func NewParserFromBytes(b []byte) *Parser {
	p := parser.NewFromBytes(b)
	return &Parser{p: p, c: compose.New(p)}
}

// SetEncoding forces the input stream encoding instead of autodetecting
// it from a byte-order mark.
func (ps *Parser) SetEncoding(enc Encoding) {
	ps.p.SetEncoding(enc)
}

// Scan returns the next token, for diagnostic use. Most callers want
// Parse or Load instead.
func (ps *Parser) Scan() (*Token, error) {
	return parser.Scan(ps.p)
}

// Parse returns the next event in the stream.
func (ps *Parser) Parse() (*Event, error) {
	return parser.Parse(ps.p)
}

// Load composes and returns the next document in the stream. It returns
// (nil, nil) once the stream is exhausted.
func (ps *Parser) Load() (*Document, error) {
	return ps.c.Next()
}

// LoadAll composes every document in the stream.
func (ps *Parser) LoadAll() ([]*Document, error) {
	var docs []*Document
	for {
		doc, err := ps.Load()
		if err != nil {
			return docs, err
		}
		if doc == nil {
			return docs, nil
		}
		docs = append(docs, doc)
	}
}

// Emitter writes events or whole documents to a byte stream. It
// is not safe for concurrent use; each goroutine should own its own
// Emitter.
type Emitter struct {
	e *emitter.Emitter
	s *serialize.Serializer
}

// NewEmitter creates an Emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	e := emitter.New(w)
	return &Emitter{e: e, s: serialize.New(e)}
}

func (em *Emitter) SetCanonical(canonical bool) { em.e.SetCanonical(canonical) }
func (em *Emitter) SetIndent(spaces int)         { em.e.SetIndent(spaces) }
func (em *Emitter) SetWidth(width int)           { em.e.SetWidth(width) }
func (em *Emitter) SetUnicode(allow bool)        { em.e.SetUnicode(allow) }
func (em *Emitter) SetEncoding(enc Encoding)     { em.e.SetEncoding(enc) }
func (em *Emitter) SetBreak(b LineBreak)         { em.e.SetBreak(b) }

// Open emits STREAM-START.
func (em *Emitter) Open() error {
	return em.s.Open()
}

// Emit writes a single event.
func (em *Emitter) Emit(ev *Event) error {
	return em.e.Emit(ev, false)
}

// Close emits STREAM-END and flushes any buffered output.
func (em *Emitter) Close() error {
	if err := em.s.Close(); err != nil {
		return err
	}
	return em.Flush()
}

// Flush writes any output buffered by the writer.
func (em *Emitter) Flush() error {
	return em.e.Flush()
}

// Dump serializes a single document: STREAM-START, the document's node
// graph, STREAM-END.
func (em *Emitter) Dump(doc *Document) error {
	if err := em.Open(); err != nil {
		return err
	}
	if err := em.s.Document(doc); err != nil {
		return err
	}
	return em.Close()
}

// DumpAll serializes multiple documents onto a single stream.
func (em *Emitter) DumpAll(docs []*Document) error {
	if err := em.Open(); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := em.s.Document(doc); err != nil {
			return err
		}
	}
	return em.Close()
}
