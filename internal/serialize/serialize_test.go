package serialize_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kadlec/yamlcore/internal/compose"
	"github.com/kadlec/yamlcore/internal/document"
	"github.com/kadlec/yamlcore/internal/emitter"
	"github.com/kadlec/yamlcore/internal/parser"
	"github.com/kadlec/yamlcore/internal/serialize"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, text string) string {
	t.Helper()
	p := parser.New(strings.NewReader(text))
	doc, err := compose.New(p).Next()
	require.NoError(t, err)
	require.NotNil(t, doc)

	var buf bytes.Buffer
	e := emitter.New(&buf)
	s := serialize.New(e)
	require.NoError(t, s.Open())
	require.NoError(t, s.Document(doc))
	require.NoError(t, s.Close())
	require.NoError(t, e.Flush())
	return buf.String()
}

func TestSerializeScalar(t *testing.T) {
	require.Equal(t, "hello\n", roundTrip(t, "hello\n"))
}

func TestSerializeMapping(t *testing.T) {
	out := roundTrip(t, "a: 1\nb: 2\n")
	require.Equal(t, "a: 1\nb: 2\n", out)
}

func TestSerializeFlowSequence(t *testing.T) {
	out := roundTrip(t, "[1, 2, 3]\n")
	require.Equal(t, "[1, 2, 3]\n", out)
}

func TestSerializeSharedNodeGetsAnchorAndAlias(t *testing.T) {
	doc := &document.Document{}
	shared := doc.Add(document.Node{Kind: document.ScalarNode, Tag: "!!str", Value: "shared"})
	a := doc.Add(document.Node{Kind: document.ScalarNode, Tag: "!!str", Value: "a"})
	b := doc.Add(document.Node{Kind: document.ScalarNode, Tag: "!!str", Value: "b"})
	root := doc.Add(document.Node{
		Kind: document.MappingNode,
		Tag:  "!!map",
		Pairs: []document.Pair{
			{Key: a, Value: shared},
			{Key: b, Value: shared},
		},
	})
	doc.Root = root

	var buf bytes.Buffer
	e := emitter.New(&buf)
	s := serialize.New(e)
	require.NoError(t, s.Open())
	require.NoError(t, s.Document(doc))
	require.NoError(t, s.Close())
	require.NoError(t, e.Flush())

	out := buf.String()
	require.Contains(t, out, "&id001")
	require.Contains(t, out, "*id001")
}

func TestSerializeDetectsCycles(t *testing.T) {
	doc := &document.Document{}
	id := doc.Add(document.Node{Kind: document.SequenceNode, Tag: "!!seq"})
	doc.Node(id).Items = append(doc.Node(id).Items, id)
	doc.Root = id

	var buf bytes.Buffer
	s := serialize.New(emitter.New(&buf))
	require.NoError(t, s.Open())
	err := s.Document(doc)
	require.Error(t, err)
}
