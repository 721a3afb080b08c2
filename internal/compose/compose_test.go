package compose_test

import (
	"strings"
	"testing"

	"github.com/kadlec/yamlcore/internal/compose"
	"github.com/kadlec/yamlcore/internal/document"
	"github.com/kadlec/yamlcore/internal/parser"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, text string) *document.Document {
	t.Helper()
	p := parser.New(strings.NewReader(text))
	c := compose.New(p)
	doc, err := c.Next()
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func TestComposeScalar(t *testing.T) {
	doc := load(t, "hello\n")
	root := doc.Node(doc.Root)
	require.Equal(t, document.ScalarNode, root.Kind)
	require.Equal(t, "hello", root.Value)
	require.Equal(t, "!!str", root.Tag)
}

func TestComposeMapping(t *testing.T) {
	doc := load(t, "a: 1\nb: 2\n")
	root := doc.Node(doc.Root)
	require.Equal(t, document.MappingNode, root.Kind)
	require.Len(t, root.Pairs, 2)
	require.Equal(t, "a", doc.Node(root.Pairs[0].Key).Value)
	require.Equal(t, "1", doc.Node(root.Pairs[0].Value).Value)
	require.Equal(t, "b", doc.Node(root.Pairs[1].Key).Value)
}

func TestComposeFlowSequence(t *testing.T) {
	doc := load(t, "[1, 2, 3]\n")
	root := doc.Node(doc.Root)
	require.Equal(t, document.SequenceNode, root.Kind)
	require.True(t, root.Flow)
	require.Len(t, root.Items, 3)
	require.Equal(t, "2", doc.Node(root.Items[1]).Value)
}

func TestComposeAliasResolvesWithinDocument(t *testing.T) {
	doc := load(t, "a: &x 1\nb: *x\n")
	root := doc.Node(doc.Root)
	valueA := root.Pairs[0].Value
	valueB := root.Pairs[1].Value
	require.Equal(t, valueA, valueB, "alias should resolve to the same node id as its anchor")
	require.Equal(t, "1", doc.Node(valueB).Value)
}

func TestComposeUndefinedAliasIsComposerError(t *testing.T) {
	p := parser.New(strings.NewReader("*missing\n"))
	c := compose.New(p)
	_, err := c.Next()
	require.Error(t, err)
	var composerErr *compose.ComposerError
	require.ErrorAs(t, err, &composerErr)
}

func TestComposeDuplicateAnchorIsComposerError(t *testing.T) {
	p := parser.New(strings.NewReader("[&x 1, &x 2]\n"))
	c := compose.New(p)
	_, err := c.Next()
	require.Error(t, err)
	var composerErr *compose.ComposerError
	require.ErrorAs(t, err, &composerErr)
}

func TestComposeAnchorScopedToDocument(t *testing.T) {
	p := parser.New(strings.NewReader("--- &x 1\n--- *x\n"))
	c := compose.New(p)
	_, err := c.Next()
	require.NoError(t, err)
	_, err = c.Next()
	require.Error(t, err, "anchor table must be cleared at DocumentEnd")
}

func TestLoadReturnsNilAtEndOfStream(t *testing.T) {
	p := parser.New(strings.NewReader("x\n"))
	c := compose.New(p)
	_, err := c.Next()
	require.NoError(t, err)
	doc, err := c.Next()
	require.NoError(t, err)
	require.Nil(t, doc)
}
