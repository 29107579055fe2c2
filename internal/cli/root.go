package cli

import (
	"github.com/spf13/cobra"

	"github.com/shidetake/sinetable/internal/config"
	"github.com/shidetake/sinetable/internal/logger"
)

// NewRootCmd builds the command tree. Running the root command with no
// arguments writes sinewave_256.h into the working directory.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "sinetable [flags]",
		Short: "Sine lookup table generator",
		Long: `Sinetable - Sine Lookup Table Generator

Writes one full period of a sine wave as 256 signed 16-bit integers, one
"<value>," per line, for inclusion as an array initializer in firmware.

Example:
  sinetable
  sinetable -o src/sinewave_256.h --wav preview.wav

Output:
  sinewave_256.h in the current directory unless --output is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, cfgFile, defaults)
			if err != nil {
				return err
			}
			return Run(cfg)
		},
		SilenceUsage:  true, // Don't show usage on errors during execution
		SilenceErrors: true, // main prints the error
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newInspectCmd(&cfgFile))

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig(cmd *cobra.Command, cfgFile string, defaults config.Config) (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		Flags:      cmd.Flags(),
		ConfigFile: cfgFile,
		Defaults:   defaults,
	})
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	logger.SetLevel(cfg.Log.Level)
	return cfg, nil
}
