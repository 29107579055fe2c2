package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVData represents WAV file metadata and its raw PCM samples
type WAVData struct {
	Path       string
	SampleRate int
	Channels   int
	BitDepth   int
	Data       []int // Interleaved integer samples at BitDepth resolution
}

// LoadWAV reads a WAV file and returns its data
func LoadWAV(path string) (*WAVData, error) {
	// Open WAV file
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file %s: %w", path, err)
	}
	defer f.Close()

	// Decode WAV
	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	// Read format information
	format := decoder.Format()

	// Read all audio data in chunks
	const bufferSize = 4096
	allData := make([]int, 0)

	for {
		buf := &audio.IntBuffer{
			Data:   make([]int, bufferSize),
			Format: format,
		}

		n, err := decoder.PCMBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("failed to read PCM data from %s: %w", path, err)
		}
		if n == 0 {
			break
		}

		// Append read data
		allData = append(allData, buf.Data[:n]...)
	}

	// Check if file contains any audio data
	if len(allData) == 0 {
		return nil, fmt.Errorf("WAV file contains no audio data: %s", path)
	}

	return &WAVData{
		Path:       path,
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
		BitDepth:   int(decoder.BitDepth),
		Data:       allData,
	}, nil
}

// WriteWAV writes integer PCM samples to a WAV file
func WriteWAV(path string, data []int, sampleRate, channels, bitDepth int) error {
	if sampleRate < 1 {
		return fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	// Create output file
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create WAV file %s: %w", path, err)
	}
	defer f.Close()

	// Create encoder
	encoder := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)

	// Create buffer
	buf := &audio.IntBuffer{
		Data: data,
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: bitDepth,
	}

	// Write to file
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV data to %s: %w", path, err)
	}

	// Close patches the RIFF sizes; its error matters.
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file %s: %w", path, err)
	}

	return nil
}

// ToMono keeps the first channel of interleaved audio
func ToMono(data []int, channels int) []int {
	if channels <= 1 {
		return data
	}

	numSamples := len(data) / channels
	mono := make([]int, numSamples)
	for i := 0; i < numSamples; i++ {
		mono[i] = data[i*channels]
	}

	return mono
}

// Duration returns the duration of the audio in seconds
func (w *WAVData) Duration() float64 {
	totalSamples := len(w.Data) / w.Channels
	return SamplesToSeconds(totalSamples, w.SampleRate)
}

// DurationString returns a human-readable duration string (M:SS.mmm format)
func (w *WAVData) DurationString() string {
	duration := w.Duration()
	minutes := int(duration) / 60
	seconds := duration - float64(minutes*60)
	return fmt.Sprintf("%d:%06.3f", minutes, seconds)
}
