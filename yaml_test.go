package yaml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kadlec/yamlcore"
	"github.com/stretchr/testify/require"
)

func TestParserLoadScalar(t *testing.T) {
	p := yaml.NewParserFromBytes([]byte("hello\n"))
	doc, err := p.Load()
	require.NoError(t, err)
	require.NotNil(t, doc)
	root := doc.Node(doc.Root)
	require.Equal(t, yaml.ScalarNode, root.Kind)
	require.Equal(t, "hello", root.Value)
}

func TestParserLoadAllMultipleDocuments(t *testing.T) {
	p := yaml.NewParserFromBytes([]byte("a\n---\nb\n"))
	docs, err := p.LoadAll()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "a", docs[0].Node(docs[0].Root).Value)
	require.Equal(t, "b", docs[1].Node(docs[1].Root).Value)
}

func TestEmitterDumpMapping(t *testing.T) {
	p := yaml.NewParserFromBytes([]byte("a: 1\nb: 2\n"))
	doc, err := p.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	e := yaml.NewEmitter(&buf)
	require.NoError(t, e.Dump(doc))
	require.Equal(t, "a: 1\nb: 2\n", buf.String())
}

func TestEmitterCanonicalMode(t *testing.T) {
	p := yaml.NewParserFromBytes([]byte("k: v\n"))
	doc, err := p.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	e := yaml.NewEmitter(&buf)
	e.SetCanonical(true)
	require.NoError(t, e.Dump(doc))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "---\n"))
	require.True(t, strings.HasSuffix(out, "...\n"))
	require.Contains(t, out, `!!str "k"`)
}

func TestEmitterUnicodeEscaping(t *testing.T) {
	p := yaml.NewParserFromBytes([]byte("\"\xe4\xb8\xad\"\n")) // "中"
	doc, err := p.Load()
	require.NoError(t, err)
	doc.Node(doc.Root).ScalarStyle = yaml.DoubleQuotedScalarStyle

	var bufEscaped bytes.Buffer
	e := yaml.NewEmitter(&bufEscaped)
	e.SetUnicode(false)
	require.NoError(t, e.Dump(doc))
	require.Contains(t, bufEscaped.String(), `\u`)

	var bufLiteral bytes.Buffer
	e2 := yaml.NewEmitter(&bufLiteral)
	e2.SetUnicode(true)
	require.NoError(t, e2.Dump(doc))
	require.Contains(t, bufLiteral.String(), "中")
}

func TestLoadEmptyStreamReturnsNilDocument(t *testing.T) {
	p := yaml.NewParserFromBytes(nil)
	doc, err := p.Load()
	require.NoError(t, err)
	require.Nil(t, doc)
}

func TestParseIncompatibleVersionDirective(t *testing.T) {
	p := yaml.NewParserFromBytes([]byte("%YAML 2.0\n---\nx\n"))
	_, err := p.Load()
	require.Error(t, err)
}

func TestSharedAnchorRoundTrips(t *testing.T) {
	p := yaml.NewParserFromBytes([]byte("a: &x 1\nb: *x\n"))
	doc, err := p.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	e := yaml.NewEmitter(&buf)
	require.NoError(t, e.Dump(doc))

	p2 := yaml.NewParserFromBytes(buf.Bytes())
	doc2, err := p2.Load()
	require.NoError(t, err)
	root := doc2.Node(doc2.Root)
	require.Equal(t, root.Pairs[0].Value, root.Pairs[1].Value)
}
