package music

import (
	"bytes"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/northcove/go-narrate/pkg/audio"
)

// decodeMP3 decodes an mp3 stream. go-mp3 always emits 16-bit little-endian
// stereo at the stream's native rate, upmixing mono input itself.
func decodeMP3(data []byte) (*audio.FloatBuffer, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %v", ErrDecode, err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3 read: %v", ErrDecode, err)
	}
	if len(pcm)%2 != 0 {
		pcm = pcm[:len(pcm)-1]
	}

	clip := &audio.Clip{
		Samples:    audio.LEToPCMInt16(pcm),
		Channels:   2,
		SampleRate: dec.SampleRate(),
	}
	if len(clip.Samples)%2 != 0 {
		clip.Samples = clip.Samples[:len(clip.Samples)-1]
	}
	return audio.ToFloat(clip), nil
}
