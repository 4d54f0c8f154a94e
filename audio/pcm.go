// Package audio provides PCM decoding and the speech playback queue.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

// SampleRate24kHz is the sample rate of synthesized speech payloads.
const SampleRate24kHz = 24000

// bytesPerSample is the width of one LINEAR16 sample.
const bytesPerSample = 2

// pcmScale normalizes int16 samples into the [-1.0, 1.0] float range.
const pcmScale = 32768.0

// DecodePCM16 decodes a base64-encoded mono LINEAR16 payload into
// normalized float32 samples in the range [-1.0, 1.0].
func DecodePCM16(payload string) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	if len(raw)%bytesPerSample != 0 {
		return nil, fmt.Errorf("pcm length %d is not a multiple of %d bytes per sample", len(raw), bytesPerSample)
	}

	samples := make([]float32, len(raw)/bytesPerSample)
	for i := range samples {
		// The uint16->int16 conversion is safe: PCM16 uses the full
		// int16 range stored as unsigned bytes.
		s := int16(binary.LittleEndian.Uint16(raw[i*bytesPerSample:]))
		samples[i] = float32(s) / pcmScale
	}
	return samples, nil
}

// EncodePCM16 converts normalized float32 samples back into a
// base64-encoded mono LINEAR16 payload. Samples outside [-1.0, 1.0] are
// clipped.
func EncodePCM16(samples []float32) string {
	raw := make([]byte, len(samples)*bytesPerSample)
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		v := int16(s * (pcmScale - 1))
		binary.LittleEndian.PutUint16(raw[i*bytesPerSample:], uint16(v))
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// Duration reports the playback length of a sample buffer.
func Duration(sampleCount, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(sampleCount) * time.Second / time.Duration(sampleRate)
}
