package datauri

import (
	"encoding/base64"
	"strings"
)

// decodePayload decodes standard base64. In lenient mode bytes outside the
// alphabet (padding and whitespace included) are skipped and a dangling
// trailing character is dropped, so only well-formed groups are decoded.
func decodePayload(payload string, strict bool) ([]byte, error) {
	if strict {
		return base64.StdEncoding.Strict().DecodeString(payload)
	}
	return base64.RawStdEncoding.DecodeString(filterAlphabet(payload))
}

func filterAlphabet(payload string) string {
	builder := strings.Builder{}
	builder.Grow(len(payload))
	for i := 0; i < len(payload); i++ {
		ch := payload[i]
		switch {
		case ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			builder.WriteByte(ch)
		case ch == '+', ch == '/':
			builder.WriteByte(ch)
		}
	}
	filtered := builder.String()
	if len(filtered)%4 == 1 {
		filtered = filtered[:len(filtered)-1]
	}
	return filtered
}

// Encode builds a base64 data URI for data.
func Encode(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
