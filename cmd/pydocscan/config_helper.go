package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/pydocscan/internal/config"
)

// GetExplicitFlags records which flags the user set on cmd, so that only
// those override configuration file values.
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	tracker := config.NewFlagTracker()
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			tracker.Set(f.Name)
		})
	}
	return tracker.GetAll()
}
