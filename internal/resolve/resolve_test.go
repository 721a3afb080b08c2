package resolve_test

import (
	"testing"

	"github.com/kadlec/yamlcore/internal/document"
	"github.com/kadlec/yamlcore/internal/resolve"
	"github.com/stretchr/testify/require"
)

func TestShortAndLongTagRoundTrip(t *testing.T) {
	require.Equal(t, "!!str", resolve.ShortTag("tag:yaml.org,2002:str"))
	require.Equal(t, "tag:yaml.org,2002:str", resolve.LongTag("!!str"))
	require.Equal(t, "!!str", resolve.ShortTag(resolve.LongTag("!!str")))
}

func TestShortTagLeavesCustomTagsAlone(t *testing.T) {
	require.Equal(t, "!mytag", resolve.ShortTag("!mytag"))
	require.Equal(t, "tag:example.com,2024:thing", resolve.LongTag("tag:example.com,2024:thing"))
}

func TestDefaultTag(t *testing.T) {
	require.Equal(t, resolve.StrTag, resolve.DefaultTag(document.ScalarNode))
	require.Equal(t, resolve.SeqTag, resolve.DefaultTag(document.SequenceNode))
	require.Equal(t, resolve.MapTag, resolve.DefaultTag(document.MappingNode))
}
