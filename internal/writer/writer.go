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

// Package writer buffers the emitter's output and re-encodes it when the
// caller asks for a stream encoding other than UTF-8.
package writer

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/kadlec/yamlcore/internal/yamlh"
)

// OutputBufferSize is the minimum number of encoded bytes the Writer
// accumulates before flushing to the underlying sink.
const OutputBufferSize = 16 * 1024

// Writer is the Emitter's byte sink. It accepts valid UTF-8 from the
// emitter and, depending on the configured encoding, either passes it
// through unchanged or transcodes it to UTF-16 with a leading BOM.
type Writer struct {
	out      io.Writer
	encoding yamlh.Encoding
	buf      []byte
	bomDone  bool
}

func New(out io.Writer) *Writer {
	return &Writer{
		out:      out,
		encoding: yamlh.UTF8_ENCODING,
		buf:      make([]byte, 0, OutputBufferSize),
	}
}

// SetEncoding selects the output stream encoding. It must be called
// before the first byte is written.
func (w *Writer) SetEncoding(enc yamlh.Encoding) {
	w.encoding = enc
}

// Write implements io.Writer. p must be valid UTF-8.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.ensureBom(); err != nil {
		return 0, err
	}
	n := len(p)
	switch w.encoding {
	case yamlh.UTF16LE_ENCODING, yamlh.UTF16BE_ENCODING:
		if err := w.appendUTF16(p); err != nil {
			return 0, err
		}
	default:
		w.buf = append(w.buf, p...)
	}
	if len(w.buf) >= OutputBufferSize {
		if err := w.Flush(); err != nil {
			return 0, err
		}
	}
	return n, nil
}

func (w *Writer) ensureBom() error {
	if w.bomDone {
		return nil
	}
	w.bomDone = true
	switch w.encoding {
	case yamlh.UTF16LE_ENCODING:
		w.buf = append(w.buf, 0xFF, 0xFE)
	case yamlh.UTF16BE_ENCODING:
		w.buf = append(w.buf, 0xFE, 0xFF)
	}
	return nil
}

func (w *Writer) appendUTF16(p []byte) error {
	little := w.encoding == yamlh.UTF16LE_ENCODING
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		if r == utf8.RuneError && size <= 1 {
			return fmt.Errorf("yamlcore: invalid UTF-8 in emitter output")
		}
		p = p[size:]
		if r > 0xFFFF {
			r -= 0x10000
			hi := uint16(0xD800 + (r >> 10))
			lo := uint16(0xDC00 + (r & 0x3FF))
			w.appendUnit(hi, little)
			w.appendUnit(lo, little)
			continue
		}
		w.appendUnit(uint16(r), little)
	}
	return nil
}

func (w *Writer) appendUnit(u uint16, little bool) {
	if little {
		w.buf = append(w.buf, byte(u), byte(u>>8))
	} else {
		w.buf = append(w.buf, byte(u>>8), byte(u))
	}
}

// Flush writes any buffered bytes to the underlying sink.
func (w *Writer) Flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	_, err := w.out.Write(w.buf)
	w.buf = w.buf[:0]
	if err != nil {
		return fmt.Errorf("yamlcore: write error: %w", err)
	}
	return nil
}
