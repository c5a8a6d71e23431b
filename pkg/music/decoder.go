package music

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/northcove/go-narrate/pkg/audio"
	"github.com/northcove/go-narrate/pkg/audio/resample"
)

// Decoder turns container audio bytes into normalized per-channel samples at
// the pipeline's target rate. The container is sniffed from magic bytes; the
// supported set is wav, mp3, and flac.
type Decoder struct {
	logger     *zap.Logger
	targetRate int
}

// NewDecoder creates a decoder that yields buffers at targetRate.
func NewDecoder(logger *zap.Logger, targetRate int) *Decoder {
	return &Decoder{logger: logger, targetRate: targetRate}
}

// Decode decodes a music file into a float buffer at the target rate with at
// most two channels. Undecodable input is reported as ErrDecode.
func (d *Decoder) Decode(data []byte) (*audio.FloatBuffer, error) {
	container := sniff(data)
	if container == "" {
		return nil, fmt.Errorf("%w: unrecognized container (%d bytes)", ErrDecode, len(data))
	}

	var (
		buf *audio.FloatBuffer
		err error
	)
	switch container {
	case "wav":
		buf, err = decodeWAV(data)
	case "mp3":
		buf, err = decodeMP3(data)
	case "flac":
		buf, err = decodeFLAC(data)
	}
	if err != nil {
		return nil, err
	}
	if buf.Frames() == 0 {
		return nil, fmt.Errorf("%w: %s stream holds no audio", ErrDecode, container)
	}

	nativeRate := buf.SampleRate
	nativeChannels := buf.NumChannels()

	// Surround material keeps its front pair; the mixer only renders stereo.
	if buf.NumChannels() > 2 {
		buf = &audio.FloatBuffer{Channels: buf.Channels[:2], SampleRate: buf.SampleRate}
	}
	buf = resample.Buffer(buf, d.targetRate)

	d.logger.Debug("music decoded",
		zap.String("container", container),
		zap.Int("native_rate", nativeRate),
		zap.Int("native_channels", nativeChannels),
		zap.Int("frames", buf.Frames()))
	return buf, nil
}

// sniff identifies the container from its magic bytes. MP3 is matched last
// since a bare frame sync is the weakest signature.
func sniff(data []byte) string {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return "wav"
	case len(data) >= 4 && string(data[0:4]) == "fLaC":
		return "flac"
	case len(data) >= 3 && string(data[0:3]) == "ID3":
		return "mp3"
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return "mp3"
	default:
		return ""
	}
}
