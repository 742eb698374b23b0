package main

import (
	"net/http"

	"github.com/rpggio/sellerconsole/internal/client"
	"github.com/spf13/cobra"
)

// cli holds state shared by all subcommands once flags are parsed.
type cli struct {
	configPath string
	settings   settings
	client     *client.Client
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "sellerctl",
		Short:         "sellerctl manages leads and opportunities on a seller console server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(c.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			c.settings = s
			c.client = client.New(s.Server, client.Options{
				HTTPClient: &http.Client{Timeout: s.Timeout},
				Retries:    s.Retries,
			})
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: ./sellerctl.yaml or <user config dir>/sellerctl/sellerctl.yaml)")
	flags.String(cfgKeyServer, defaultServer, "server base URL")
	flags.Duration(cfgKeyTimeout, defaultTimeout, "per-request timeout")
	flags.Int(cfgKeyRetries, defaultRetries, "retries for retryable failures")
	flags.StringP(cfgKeyOutput, "o", outputTable, "output format: table or json")

	root.AddCommand(
		newLeadsCmd(c),
		newOpportunitiesCmd(c),
		newActivityCmd(c),
		newDashboardCmd(c),
		newErrorRateCmd(c),
		newResetCmd(c),
	)
	return root
}
