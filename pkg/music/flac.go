package music

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/northcove/go-narrate/pkg/audio"
)

// decodeFLAC decodes a flac stream frame by frame, normalizing samples by the
// stream's bit depth.
func decodeFLAC(data []byte) (*audio.FloatBuffer, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: flac: %v", ErrDecode, err)
	}
	defer stream.Close()

	info := stream.Info
	numCh := int(info.NChannels)
	if numCh < 1 {
		return nil, fmt.Errorf("%w: flac stream reports %d channels", ErrDecode, numCh)
	}
	scale := float64(int64(1) << (info.BitsPerSample - 1))

	channels := make([][]float64, numCh)
	if info.NSamples > 0 {
		for ch := range channels {
			channels[ch] = make([]float64, 0, info.NSamples)
		}
	}

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: flac frame: %v", ErrDecode, err)
		}
		for ch, sub := range frame.Subframes {
			if ch >= numCh {
				break
			}
			for _, s := range sub.Samples {
				channels[ch] = append(channels[ch], float64(s)/scale)
			}
		}
	}

	// Every channel must carry the same frame count downstream.
	frames := len(channels[0])
	for _, ch := range channels {
		if len(ch) < frames {
			frames = len(ch)
		}
	}
	for ch := range channels {
		channels[ch] = channels[ch][:frames]
	}

	return &audio.FloatBuffer{Channels: channels, SampleRate: int(info.SampleRate)}, nil
}
