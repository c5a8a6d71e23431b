// Package wav serializes 16-bit PCM clips to the canonical RIFF/WAVE byte
// layout and parses such files back.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/northcove/go-narrate/pkg/audio"
)

// HeaderSize is the fixed size of the RIFF/WAVE header this package writes.
const HeaderSize = 44

// header is the canonical 44-byte RIFF/WAVE header for integer PCM.
type header struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // 36 + Subchunk2Size
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for integer PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * 2
	BlockAlign    uint16 // NumChannels * 2
	BitsPerSample uint16 // 16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // sample bytes
}

// Encode serializes a clip as a WAV blob: the 44-byte header followed by the
// interleaved samples in little-endian order. The clip layout is validated;
// violations surface as audio.ErrContractViolation.
func Encode(clip *audio.Clip) ([]byte, error) {
	if err := clip.Validate(); err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}

	dataSize := uint32(len(clip.Samples) * 2)
	h := header{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   uint16(clip.Channels),
		SampleRate:    uint32(clip.SampleRate),
		ByteRate:      uint32(clip.SampleRate) * uint32(clip.Channels) * 2,
		BlockAlign:    uint16(clip.Channels) * 2,
		BitsPerSample: 16,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(clip.Samples)*2))
	if err := binary.Write(buf, binary.LittleEndian, h); err != nil {
		return nil, fmt.Errorf("encode wav: write header: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, clip.Samples); err != nil {
		return nil, fmt.Errorf("encode wav: write samples: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a 16-bit integer PCM WAV blob into a clip. Unlike Encode,
// which always emits the canonical layout, Decode tolerates extra chunks
// between "fmt " and "data" since files from the wild carry LIST/INFO
// metadata.
func Decode(data []byte) (*audio.Clip, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("wav too short: %d bytes, need at least %d", len(data), HeaderSize)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE stream")
	}

	var (
		channels   int
		sampleRate int
		bits       int
		haveFmt    bool
	)

	// Walk the chunk list after the 12-byte RIFF preamble.
	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if size < 0 || body+size > len(data) {
			return nil, fmt.Errorf("wav chunk %q overruns stream", id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("wav fmt chunk too short: %d bytes", size)
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 {
				return nil, fmt.Errorf("unsupported wav audio format %d, want integer PCM", format)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			if bits != 16 {
				return nil, fmt.Errorf("unsupported wav bit depth %d, want 16", bits)
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("wav data chunk before fmt chunk")
			}
			clip := &audio.Clip{
				Samples:    audio.LEToPCMInt16(data[body : body+size]),
				Channels:   channels,
				SampleRate: sampleRate,
			}
			if err := clip.Validate(); err != nil {
				return nil, fmt.Errorf("decode wav: %w", err)
			}
			return clip, nil
		}

		// Chunks are word-aligned.
		off = body + size + size%2
	}

	return nil, fmt.Errorf("wav data chunk not found")
}
