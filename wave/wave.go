// Package wave encodes synthesized sample buffers as 16-bit stereo WAV,
// duplicating the mono channel.
package wave

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/audite/eartrain/synth"
)

const bitDepth = 16

func interleaveStereo(pcm []int) []int {
	res := make([]int, 0, len(pcm)*2)
	for _, v := range pcm {
		res = append(res, v, v)
	}
	return res
}

// EncodeBytes renders float samples to an in-memory WAV file.
func EncodeBytes(samples []float64, sampleRate int) ([]byte, error) {
	buf := &seekBuffer{}
	if err := encode(buf, samples, sampleRate); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeFile renders float samples to a WAV file on disk.
func EncodeFile(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create wav file: %w", err)
	}
	defer f.Close()
	return encode(f, samples, sampleRate)
}

func encode(ws writeSeeker, samples []float64, sampleRate int) error {
	e := wav.NewEncoder(ws, sampleRate, bitDepth, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           interleaveStereo(synth.ToPCM16(samples)),
		SourceBitDepth: bitDepth,
	}
	if err := e.Write(buf); err != nil {
		return fmt.Errorf("could not write wav data: %w", err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("could not finalize wav file: %w", err)
	}
	return nil
}
