package escorex

import (
	"bytes"
	"compress/gzip"
	"crypto/rand"
	"io"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/require"
)

func TestCompressionSkipsSmallBodies(t *testing.T) {
	cmd := NewCompressionManagerDefault()

	body := []byte(`{"a":1}`)
	encoded, encoding, err := cmd.Compress(body)
	require.NoError(t, err)
	require.Empty(t, encoding)
	require.Equal(t, body, encoded)
}

func TestCompressionGzipRoundTrip(t *testing.T) {
	cmd := NewCompressionManagerDefault()

	body := []byte(strings.Repeat(`{"field":"value"}`, 128))
	encoded, encoding, err := cmd.Compress(body)
	require.NoError(t, err)
	require.Equal(t, "gzip", encoding)
	require.Less(t, len(encoded), len(body))

	zr, err := gzip.NewReader(bytes.NewReader(encoded))
	require.NoError(t, err)
	decoded, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestCompressionSnappyRoundTrip(t *testing.T) {
	cmd := NewCompressionManagerDefault()
	cmd.Encoding = CompressionEncodingSnappy

	body := []byte(strings.Repeat(`{"field":"value"}`, 128))
	encoded, encoding, err := cmd.Compress(body)
	require.NoError(t, err)
	require.Equal(t, "snappy", encoding)

	decoded, err := snappy.Decode(nil, encoded)
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestCompressionSkipsIncompressibleBodies(t *testing.T) {
	cmd := NewCompressionManagerDefault()

	body := make([]byte, 2048)
	_, err := rand.Read(body)
	require.NoError(t, err)

	encoded, encoding, err := cmd.Compress(body)
	require.NoError(t, err)
	require.Empty(t, encoding)
	require.Equal(t, body, encoded)
}

func TestCompressionRejectsUnknownEncoding(t *testing.T) {
	cmd := NewCompressionManagerDefault()
	cmd.Encoding = CompressionEncoding("zstd")

	_, _, err := cmd.Compress([]byte(strings.Repeat("a", 128)))
	require.ErrorIs(t, err, ErrInvalidArgument)
}
