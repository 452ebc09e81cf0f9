package cmd

import (
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

// NewRootCommand builds the tracking CLI. Subcommands load configuration lazily so
// that --help works without a database.
func NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "tracking",
		Short: "Courier parcel tracking service",
		Long: `Courier parcel tracking service.

Functions:
- Book parcels at a branch and issue tracking codes
- Record status updates and confirm deliveries
- Serve the public tracking page and staff dashboards over HTTP`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "optional dotenv file with configuration")

	loader := func() (Config, error) {
		return LoadConfig(envFile)
	}

	root.AddCommand(
		newServeCommand(loader),
		newMigrateCommand(loader),
		newTrackCommand(loader),
	)
	return root
}

type configLoader func() (Config, error)
