package emitter_test

import (
	"bytes"
	"testing"

	"github.com/kadlec/yamlcore/internal/emitter"
	"github.com/kadlec/yamlcore/internal/yamlh"
	"github.com/stretchr/testify/require"
)

func emitScalar(t *testing.T, configure func(*emitter.Emitter), value string) string {
	t.Helper()
	var buf bytes.Buffer
	e := emitter.New(&buf)
	if configure != nil {
		configure(e)
	}
	require.NoError(t, e.Emit(&yamlh.Event{Type: yamlh.STREAM_START_EVENT}, false))
	require.NoError(t, e.Emit(&yamlh.Event{Type: yamlh.DOCUMENT_START_EVENT, Implicit: true}, false))
	require.NoError(t, e.Emit(&yamlh.Event{
		Type: yamlh.SCALAR_EVENT, Value: []byte(value),
		Implicit: true, Quoted_implicit: true, Style: yamlh.YamlStyle(yamlh.PLAIN_SCALAR_STYLE),
	}, false))
	require.NoError(t, e.Emit(&yamlh.Event{Type: yamlh.DOCUMENT_END_EVENT, Implicit: true}, false))
	require.NoError(t, e.Emit(&yamlh.Event{Type: yamlh.STREAM_END_EVENT}, true))
	require.NoError(t, e.Flush())
	return buf.String()
}

func TestEmitPlainScalar(t *testing.T) {
	require.Equal(t, "value\n", emitScalar(t, nil, "value"))
}

func TestSetIndentRejectsNegative(t *testing.T) {
	e := emitter.New(&bytes.Buffer{})
	require.Panics(t, func() { e.SetIndent(-1) })
}

func TestSetBreakSelectsLineEnding(t *testing.T) {
	var buf bytes.Buffer
	e := emitter.New(&buf)
	e.SetBreak(yamlh.CRLN_BREAK)
	require.NoError(t, e.Emit(&yamlh.Event{Type: yamlh.STREAM_START_EVENT}, false))
	require.NoError(t, e.Emit(&yamlh.Event{Type: yamlh.DOCUMENT_START_EVENT, Implicit: true}, false))
	require.NoError(t, e.Emit(&yamlh.Event{
		Type: yamlh.SCALAR_EVENT, Value: []byte("v"),
		Implicit: true, Quoted_implicit: true,
	}, false))
	require.NoError(t, e.Emit(&yamlh.Event{Type: yamlh.DOCUMENT_END_EVENT, Implicit: true}, false))
	require.NoError(t, e.Emit(&yamlh.Event{Type: yamlh.STREAM_END_EVENT}, true))
	require.NoError(t, e.Flush())
	require.Equal(t, "v\r\n", buf.String())
}

func TestCanonicalModeForcesExplicitBoundaries(t *testing.T) {
	out := emitScalar(t, func(e *emitter.Emitter) { e.SetCanonical(true) }, "v")
	require.True(t, bytes.HasPrefix([]byte(out), []byte("---\n")))
	require.True(t, bytes.HasSuffix([]byte(out), []byte("...\n")))
}
