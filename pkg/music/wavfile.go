package music

import (
	"fmt"

	"github.com/northcove/go-narrate/pkg/audio"
	"github.com/northcove/go-narrate/pkg/wav"
)

// decodeWAV decodes a 16-bit PCM wav file.
func decodeWAV(data []byte) (*audio.FloatBuffer, error) {
	clip, err := wav.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: wav: %v", ErrDecode, err)
	}
	return audio.ToFloat(clip), nil
}
