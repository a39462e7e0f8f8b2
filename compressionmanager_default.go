package escorex

import (
	"bytes"
	"compress/gzip"

	"github.com/golang/snappy"
)

type CompressionEncoding string

const (
	CompressionEncodingGzip   CompressionEncoding = "gzip"
	CompressionEncodingSnappy CompressionEncoding = "snappy"
)

type CompressionManagerDefault struct {
	// Encoding selects the wire encoding. Defaults to gzip.
	Encoding CompressionEncoding

	// CompressionMinSize is the smallest body worth compressing.
	CompressionMinSize int

	// CompressionMinRatio is the largest compressed:original ratio that
	// is still worth sending compressed.
	CompressionMinRatio float64
}

func NewCompressionManagerDefault() *CompressionManagerDefault {
	return &CompressionManagerDefault{
		Encoding:            CompressionEncodingGzip,
		CompressionMinSize:  32,
		CompressionMinRatio: 0.83,
	}
}

func (cmd *CompressionManagerDefault) Compress(body []byte) ([]byte, string, error) {
	// Only compress values that are large enough to be worthwhile.
	if len(body) <= cmd.CompressionMinSize {
		return body, "", nil
	}

	encoding := cmd.Encoding
	if encoding == "" {
		encoding = CompressionEncodingGzip
	}

	var compressed []byte
	switch encoding {
	case CompressionEncodingSnappy:
		compressed = snappy.Encode(nil, body)
	case CompressionEncodingGzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(body); err != nil {
			return nil, "", err
		}
		if err := zw.Close(); err != nil {
			return nil, "", err
		}
		compressed = buf.Bytes()
	default:
		return nil, "", invalidArgumentError{"unsupported compression encoding: " + string(encoding)}
	}

	// Only send the compressed value if the ratio of compressed:original
	// is small enough.
	if float64(len(compressed))/float64(len(body)) > cmd.CompressionMinRatio {
		return body, "", nil
	}

	return compressed, string(encoding), nil
}
