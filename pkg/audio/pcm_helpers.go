package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// PCMInt16ToLE converts int16 samples to raw little-endian bytes.
func PCMInt16ToLE(samples []int16) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

// LEToPCMInt16 converts raw little-endian bytes back to int16 samples.
func LEToPCMInt16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	_ = binary.Read(bytes.NewReader(b), binary.LittleEndian, &out)
	return out
}

// DecodePayload decodes a base64 transport payload into 16-bit PCM samples.
// Invalid base64 and payloads with a dangling half-sample byte are reported
// as ErrMalformedEncoding.
func DecodePayload(payload string) ([]int16, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %v", ErrMalformedEncoding, err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%w: payload length %d is not a multiple of 2 bytes", ErrMalformedEncoding, len(raw))
	}
	return LEToPCMInt16(raw), nil
}
