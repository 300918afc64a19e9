package pool

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorWriter struct {
	err error
}

func (w *errorWriter) Write([]byte) (int, error) {
	return 0, w.err
}

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(RecordBufferDefaultSize)

	n, err := bb.Write([]byte(`{"bid":`))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	_, _ = bb.Write([]byte(`101.0}`))
	assert.Equal(t, `{"bid":101.0}`, string(bb.Bytes()))

	originalCap := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(RecordBufferDefaultSize)
	bb.B = append(bb.B, "{}\n"...)

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, "{}\n", buf.String())

	_, err = bb.WriteTo(&errorWriter{err: io.ErrShortWrite})
	assert.True(t, errors.Is(err, io.ErrShortWrite))
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())

	bb.B = append(bb.B, "data"...)
	p.Put(bb)

	again := p.Get()
	assert.Equal(t, 0, again.Len(), "pooled buffers must come back empty")
}

func TestByteBufferPool_DropsOversized(t *testing.T) {
	p := NewByteBufferPool(16, 32)

	bb := p.Get()
	bb.B = make([]byte, 0, 1024)
	p.Put(bb) // discarded

	// nil must be tolerated
	p.Put(nil)

	got := p.Get()
	assert.LessOrEqual(t, cap(got.B), 32)
}

func TestRecordBufferPool(t *testing.T) {
	bb := GetRecordBuffer()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), 0)
	bb.B = append(bb.B, "x"...)
	PutRecordBuffer(bb)
}
