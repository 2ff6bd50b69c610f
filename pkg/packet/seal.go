package packet

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Seal compresses text, masks it with the repeating secret and base64
// encodes the result, so it fits in a packet field. An empty secret skips
// the mask. The mask is obfuscation, not encryption.
func Seal(text string, secret []byte) (string, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return "", fmt.Errorf("compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("compress: %w", err)
	}

	data := buf.Bytes()
	mask(data, secret)
	return base64.StdEncoding.EncodeToString(data), nil
}

// Open reverses Seal.
func Open(sealed string, secret []byte) (string, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: base64: %v", ErrMalformed, err)
	}
	mask(data, secret)

	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: zlib: %v", ErrMalformed, err)
	}
	defer r.Close()

	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: zlib: %v", ErrMalformed, err)
	}
	return string(text), nil
}

func mask(data, secret []byte) {
	if len(secret) == 0 {
		return
	}
	for i := range data {
		data[i] ^= secret[i%len(secret)]
	}
}
