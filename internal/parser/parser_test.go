package parser_test

import (
	"strings"
	"testing"

	"github.com/kadlec/yamlcore/internal/parser"
	"github.com/kadlec/yamlcore/internal/yamlh"
	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, text string) []*yamlh.Event {
	t.Helper()
	p := parser.New(strings.NewReader(text))
	var events []*yamlh.Event
	for {
		ev, err := parser.Parse(p)
		require.NoError(t, err)
		events = append(events, ev)
		if ev.Type == yamlh.STREAM_END_EVENT {
			return events
		}
	}
}

func TestEmptyInputYieldsStreamStartAndEnd(t *testing.T) {
	events := collectEvents(t, "")
	require.Len(t, events, 2)
	require.Equal(t, yamlh.STREAM_START_EVENT, events[0].Type)
	require.Equal(t, yamlh.STREAM_END_EVENT, events[1].Type)
}

func TestBareScalarProducesImplicitDocument(t *testing.T) {
	events := collectEvents(t, "x\n")
	var types []yamlh.EventType
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	require.Equal(t, []yamlh.EventType{
		yamlh.STREAM_START_EVENT,
		yamlh.DOCUMENT_START_EVENT,
		yamlh.SCALAR_EVENT,
		yamlh.DOCUMENT_END_EVENT,
		yamlh.STREAM_END_EVENT,
	}, types)
	require.True(t, events[1].Implicit)
	require.True(t, events[3].Implicit)
}

func TestIncompatibleYAMLVersionIsError(t *testing.T) {
	p := parser.New(strings.NewReader("%YAML 2.0\n---\nx\n"))
	for {
		_, err := parser.Parse(p)
		if err != nil {
			return
		}
	}
}

func TestYAML12DirectiveIsAccepted(t *testing.T) {
	events := collectEvents(t, "%YAML 1.2\n---\nx\n")
	require.Equal(t, yamlh.STREAM_END_EVENT, events[len(events)-1].Type)
}

func TestDuplicateTagDirectiveIsError(t *testing.T) {
	p := parser.New(strings.NewReader("%TAG ! tag:example.com,2024:\n%TAG ! tag:example.com,2024:\n---\nx\n"))
	for {
		_, err := parser.Parse(p)
		if err != nil {
			return
		}
	}
}

func TestIndentlessSequenceInMappingValue(t *testing.T) {
	events := collectEvents(t, "a:\n- 1\n- 2\n")
	var sawSeqStart bool
	for _, ev := range events {
		if ev.Type == yamlh.SEQUENCE_START_EVENT {
			sawSeqStart = true
		}
	}
	require.True(t, sawSeqStart)
}

func TestScanExposesTokensDirectly(t *testing.T) {
	p := parser.New(strings.NewReader("a: b\n"))
	tok, err := parser.Scan(p)
	require.NoError(t, err)
	require.Equal(t, yamlh.STREAM_START_TOKEN, tok.Type)
}
