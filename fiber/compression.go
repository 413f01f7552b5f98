package fiber

import (
	"bytes"
	"compress/gzip"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/gofiber/fiber/v2"
)

// CompressionConfig configures response compression.
type CompressionConfig struct {
	// EnableBrotli enables Brotli compression, preferred when accepted
	EnableBrotli bool `yaml:"brotli"`
	// EnableGzip enables Gzip compression
	EnableGzip bool `yaml:"gzip"`
	// BrotliLevel compression level (0-11)
	BrotliLevel int `yaml:"brotli_level"`
	// GzipLevel compression level (1-9)
	GzipLevel int `yaml:"gzip_level"`
	// MinSize is the smallest body worth compressing, in bytes
	MinSize int `yaml:"min_size"`
}

// DefaultCompressionConfig returns default compression configuration.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		EnableBrotli: true,
		EnableGzip:   true,
		BrotliLevel:  4,
		GzipLevel:    6,
		MinSize:      1024,
	}
}

var compressibleTypes = []string{
	"text/html",
	"text/css",
	"text/javascript",
	"application/javascript",
	"application/json",
	"image/svg+xml",
}

// CompressionMiddleware compresses rendered pages and JSON with Brotli or
// Gzip, depending on what the client accepts.
func CompressionMiddleware(config CompressionConfig) fiber.Handler {
	config.BrotliLevel = min(max(config.BrotliLevel, 0), 11)
	config.GzipLevel = min(max(config.GzipLevel, 1), 9)

	brotliPool := sync.Pool{
		New: func() any { return brotli.NewWriterLevel(nil, config.BrotliLevel) },
	}
	gzipPool := sync.Pool{
		New: func() any {
			w, _ := gzip.NewWriterLevel(nil, config.GzipLevel)
			return w
		},
	}

	return func(c *fiber.Ctx) error {
		accept := strings.ToLower(c.Get(fiber.HeaderAcceptEncoding))

		var encoding string
		switch {
		case config.EnableBrotli && strings.Contains(accept, "br"):
			encoding = "br"
		case config.EnableGzip && strings.Contains(accept, "gzip"):
			encoding = "gzip"
		default:
			return c.Next()
		}

		if err := c.Next(); err != nil {
			return err
		}

		resp := c.Response()
		body := resp.Body()
		if len(body) < config.MinSize || len(resp.Header.Peek(fiber.HeaderContentEncoding)) > 0 {
			return nil
		}
		if !isCompressible(string(resp.Header.ContentType())) {
			return nil
		}

		var compressed []byte
		if encoding == "br" {
			compressed = compressBrotli(body, &brotliPool)
		} else {
			compressed = compressGzip(body, &gzipPool)
		}
		if len(compressed) == 0 || len(compressed) >= len(body) {
			return nil
		}

		c.Set(fiber.HeaderContentEncoding, encoding)
		c.Vary(fiber.HeaderAcceptEncoding)
		resp.SetBody(compressed)
		return nil
	}
}

func isCompressible(contentType string) bool {
	for _, ct := range compressibleTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}

func compressBrotli(data []byte, pool *sync.Pool) []byte {
	writer := pool.Get().(*brotli.Writer)
	defer pool.Put(writer)

	var buf bytes.Buffer
	writer.Reset(&buf)
	if _, err := writer.Write(data); err != nil {
		return nil
	}
	if err := writer.Close(); err != nil {
		return nil
	}
	return buf.Bytes()
}

func compressGzip(data []byte, pool *sync.Pool) []byte {
	writer := pool.Get().(*gzip.Writer)
	defer pool.Put(writer)

	var buf bytes.Buffer
	writer.Reset(&buf)
	if _, err := writer.Write(data); err != nil {
		return nil
	}
	if err := writer.Close(); err != nil {
		return nil
	}
	return buf.Bytes()
}
