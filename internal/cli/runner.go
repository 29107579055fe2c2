package cli

import (
	"fmt"

	"github.com/shidetake/sinetable/internal/audio"
	"github.com/shidetake/sinetable/internal/config"
	"github.com/shidetake/sinetable/internal/logger"
	"github.com/shidetake/sinetable/internal/table"
)

const previewBitDepth = 16

// Run generates the table and writes the header, plus the WAV preview
// when one is configured.
func Run(cfg config.Config) error {
	t := table.Default()

	if err := table.WriteFile(cfg.Output.Path, t, cfg.Style()); err != nil {
		return err
	}
	logger.Debugf("wrote %d samples to %s", len(t), cfg.Output.Path)

	if cfg.Preview.Path == "" {
		return nil
	}

	if err := writePreview(t, cfg.Preview); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}

	return nil
}

// writePreview loops the table at the firmware playback rate
func writePreview(t table.Table, p config.PreviewConfig) error {
	rate := int(table.Fs)
	numSamples := audio.SecondsToSamples(p.Seconds, rate)
	if numSamples < len(t) {
		numSamples = len(t)
	}

	data := audio.RenderLoop(t, numSamples)
	if err := audio.WriteWAV(p.Path, data, rate, 1, previewBitDepth); err != nil {
		return err
	}

	logger.Debugf("wrote %.3fs preview at %d Hz (%.2f Hz tone) to %s",
		audio.SamplesToSeconds(numSamples, rate),
		rate,
		audio.ToneFrequency(table.Fs, len(t)),
		p.Path)

	return nil
}
