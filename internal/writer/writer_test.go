package writer_test

import (
	"bytes"
	"testing"

	"github.com/kadlec/yamlcore/internal/writer"
	"github.com/kadlec/yamlcore/internal/yamlh"
	"github.com/stretchr/testify/require"
)

func TestWriteUTF8PassesThroughUnchanged(t *testing.T) {
	var buf bytes.Buffer
	w := writer.New(&buf)
	_, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.Equal(t, "hello", buf.String())
}

func TestWriteUTF16LEAddsBOMAndTranscodes(t *testing.T) {
	var buf bytes.Buffer
	w := writer.New(&buf)
	w.SetEncoding(yamlh.UTF16LE_ENCODING)
	_, err := w.Write([]byte("AB"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.Equal(t, []byte{0xFF, 0xFE, 'A', 0, 'B', 0}, buf.Bytes())
}

func TestWriteUTF16BEAddsBOMAndTranscodes(t *testing.T) {
	var buf bytes.Buffer
	w := writer.New(&buf)
	w.SetEncoding(yamlh.UTF16BE_ENCODING)
	_, err := w.Write([]byte("AB"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.Equal(t, []byte{0xFE, 0xFF, 0, 'A', 0, 'B'}, buf.Bytes())
}

func TestWriteUTF16SurrogatePair(t *testing.T) {
	var buf bytes.Buffer
	w := writer.New(&buf)
	w.SetEncoding(yamlh.UTF16LE_ENCODING)
	_, err := w.Write([]byte("\xf0\x9f\x98\x80")) // U+1F600, outside the BMP
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.Equal(t, []byte{0xFF, 0xFE, 0x3D, 0xD8, 0x00, 0xDE}, buf.Bytes())
}

func TestFlushIsNoOpWhenBufferEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := writer.New(&buf)
	require.NoError(t, w.Flush())
	require.Equal(t, 0, buf.Len())
}
