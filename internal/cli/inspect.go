package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shidetake/sinetable/internal/audio"
	"github.com/shidetake/sinetable/internal/config"
	"github.com/shidetake/sinetable/internal/logger"
	"github.com/shidetake/sinetable/internal/table"
)

// maxReportedMismatches caps the per-index lines printed by --verify
const maxReportedMismatches = 8

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
)

func newInspectCmd(cfgFile *string) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Report statistics for a generated header or WAV preview",
		Long: `Reads a header written by sinetable (either line style) or a WAV preview
and reports its range, DC offset, RMS level and spectral purity.

With --verify the command fails unless the samples match a freshly
generated table.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *cfgFile, config.DefaultConfig())
			if err != nil {
				return err
			}

			path := cfg.Output.Path
			if len(args) == 1 {
				path = args[0]
			}

			return Inspect(cmd.OutOrStdout(), path, verify)
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Fail if the table differs from the generator output")

	return cmd
}

// Inspect loads the table at path, prints its statistics to out, and
// optionally checks it against the generator.
func Inspect(out io.Writer, path string, verify bool) error {
	t, err := loadTable(path)
	if err != nil {
		return err
	}

	stats, err := table.Analyze(t)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", path, err)
	}

	fmt.Fprintf(out, "%s\n", filepath.Base(path))
	fmt.Fprintf(out, "  Samples:     %d\n", stats.Length)
	fmt.Fprintf(out, "  Range:       %d .. %d (peak at %d)\n", stats.Min, stats.Max, stats.PeakIndex)
	fmt.Fprintf(out, "  DC offset:   %.6f\n", stats.Mean)
	fmt.Fprintf(out, "  RMS:         %.6f\n", stats.RMS)
	fmt.Fprintf(out, "  Fundamental: %.6f%% of energy\n", stats.FundamentalRatio*100)
	fmt.Fprintf(out, "  THD:         %.6f%%\n", stats.THD*100)

	if !verify {
		return nil
	}

	mismatches := table.Compare(table.Default(), t)
	if len(mismatches) == 0 {
		fmt.Fprintf(out, "  %s matches generator output\n", okMark)
		return nil
	}

	fmt.Fprintf(out, "  %s %d samples differ from generator output\n", failMark, len(mismatches))
	for i, m := range mismatches {
		if i == maxReportedMismatches {
			fmt.Fprintf(out, "    ...\n")
			break
		}
		fmt.Fprintf(out, "    %s\n", m)
	}

	return fmt.Errorf("%s does not match generator output (%d mismatches)", path, len(mismatches))
}

// loadTable reads a header file, or the first period of a WAV preview
func loadTable(path string) (table.Table, error) {
	if strings.ToLower(filepath.Ext(path)) != ".wav" {
		return table.ReadFile(path)
	}

	wav, err := audio.LoadWAV(path)
	if err != nil {
		return nil, err
	}
	if wav.BitDepth != previewBitDepth {
		return nil, fmt.Errorf("preview must be %d-bit PCM (got %d-bit): %s", previewBitDepth, wav.BitDepth, path)
	}
	if wav.SampleRate != int(table.Fs) {
		logger.Warnf("%s plays at %d Hz, firmware runs at %d Hz", path, wav.SampleRate, int(table.Fs))
	}
	logger.Debugf("loaded %s (%d channels, %d Hz, %s)",
		filepath.Base(path), wav.Channels, wav.SampleRate, wav.DurationString())

	mono := audio.ToMono(wav.Data, wav.Channels)
	if len(mono) > table.N {
		mono = mono[:table.N]
	}

	return table.Table(mono), nil
}
