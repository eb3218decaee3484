package main

import (
	"io"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vortextricks/vortextricks/internal/logging"
	"github.com/vortextricks/vortextricks/internal/messages"
)

const registryFileName = "games.toml"

// rootOptions carries the persistent flags and the lenient tool config
// shared by every subcommand.
type rootOptions struct {
	registryPath string
	verbose      bool
	cfg          toolConfig
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{cfg: loadToolConfig()}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.registryPath, messages.FlagRegistry, "", messages.FlagRegistryUsage)
	cmd.PersistentFlags().BoolVar(&opts.verbose, messages.FlagVerbose, false, messages.FlagVerboseUsage)
	cmd.AddCommand(newSyncCmd(opts))
	cmd.AddCommand(newPlanCmd(opts))
	cmd.AddCommand(newDoctorCmd(opts))
	return cmd
}

func (o *rootOptions) logger(stderr io.Writer) zerolog.Logger {
	return logging.New(stderr, o.verbose)
}

// registryFile resolves the game registry path: the flag wins, then the
// config file, then games.toml next to the binary, then the working
// directory.
func (o *rootOptions) registryFile() string {
	if o.registryPath != "" {
		return o.registryPath
	}
	if o.cfg.Registry != "" {
		if expanded, err := homedir.Expand(o.cfg.Registry); err == nil {
			return expanded
		}
		return o.cfg.Registry
	}
	if exe, err := os.Executable(); err == nil {
		beside := filepath.Join(filepath.Dir(exe), registryFileName)
		if _, statErr := os.Stat(beside); statErr == nil {
			return beside
		}
	}
	return registryFileName
}
