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

package yaml_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kadlec/yamlcore"
	"github.com/stretchr/testify/require"
	refyaml "gopkg.in/yaml.v3"
)

// toGeneric flattens a composed Document into the same plain
// map[string]interface{}/[]interface{}/string shape gopkg.in/yaml.v3
// produces when unmarshalling into interface{}, so the two can be
// compared with cmp.Diff independent of either library's internal
// node representation.
func toGeneric(doc *yaml.Document, id int) interface{} {
	if id == 0 {
		return nil
	}
	n := doc.Node(id)
	switch n.Kind {
	case yaml.SequenceNode:
		items := make([]interface{}, len(n.Items))
		for i, child := range n.Items {
			items[i] = toGeneric(doc, child)
		}
		return items
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Pairs))
		for _, p := range n.Pairs {
			key := toGeneric(doc, p.Key)
			m[key.(string)] = toGeneric(doc, p.Value)
		}
		return m
	default:
		return n.Value
	}
}

// agreesWithReferenceParser loads text with this module's own parser and
// with gopkg.in/yaml.v3, then checks the two land on the same generic
// tree. Both sides treat scalars as plain strings since this module does
// not perform schema-driven implicit typing.
func agreesWithReferenceParser(t *testing.T, text string) {
	t.Helper()

	p := yaml.NewParserFromBytes([]byte(text))
	doc, err := p.Load()
	require.NoError(t, err)
	require.NotNil(t, doc)
	got := toGeneric(doc, doc.Root)

	var want interface{}
	require.NoError(t, refyaml.Unmarshal([]byte(text), &want))
	want = stringifyScalars(want)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("document mismatch against reference parser (-want +got):\n%s", diff)
	}
}

// stringifyScalars converts a yaml.v3 interface{} tree (which performs
// implicit typing) into the all-string-scalar shape this module produces,
// and normalizes yaml.MapSlice-free map[string]interface{} keys so both
// trees compare equal.
func stringifyScalars(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(x))
		for k, val := range x {
			m[k] = stringifyScalars(val)
		}
		return m
	case []interface{}:
		items := make([]interface{}, len(x))
		for i, val := range x {
			items[i] = stringifyScalars(val)
		}
		return items
	case string:
		return x
	case nil:
		return ""
	default:
		var buf bytes.Buffer
		enc := refyaml.NewEncoder(&buf)
		_ = enc.Encode(x)
		_ = enc.Close()
		out := buf.String()
		for len(out) > 0 && (out[len(out)-1] == '\n') {
			out = out[:len(out)-1]
		}
		return out
	}
}

func TestAgreesWithReferenceParserOnMapping(t *testing.T) {
	agreesWithReferenceParser(t, "a: 1\nb: two\n")
}

func TestAgreesWithReferenceParserOnNestedSequence(t *testing.T) {
	agreesWithReferenceParser(t, "- a\n- [1, 2, 3]\n- k: v\n")
}

func TestAgreesWithReferenceParserOnFlowMapping(t *testing.T) {
	agreesWithReferenceParser(t, "{a: 1, b: 2}\n")
}

// TestDumpLoadRoundTripMatchesReferenceParser exercises the full
// dump(load(x)) ∘ load cycle: the dumped text must agree with the
// reference library's view of it, and re-loading the dumped text must give
// the same document shape as loading the original text.
func TestDumpLoadRoundTripMatchesReferenceParser(t *testing.T) {
	const text = "name: widget\ntags:\n- red\n- blue\ncount: 3\n"

	p := yaml.NewParserFromBytes([]byte(text))
	doc, err := p.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	e := yaml.NewEmitter(&buf)
	require.NoError(t, e.Dump(doc))

	agreesWithReferenceParser(t, buf.String())

	p2 := yaml.NewParserFromBytes(buf.Bytes())
	doc2, err := p2.Load()
	require.NoError(t, err)

	if diff := cmp.Diff(toGeneric(doc, doc.Root), toGeneric(doc2, doc2.Root)); diff != "" {
		t.Fatalf("dump/reload changed document shape (-before +after):\n%s", diff)
	}
}
