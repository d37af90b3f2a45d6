package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "toolspend",
	Short: "SaaS tool spend dashboard service",
	Long: `toolspend tracks the SaaS tools an organization pays for. It mirrors
the tool catalog from the upstream inventory API, derives spend analytics
and dashboard views from it, and records spend history locally.

It answers questions like:
- How much are we spending per month, and against what budget
- Which departments and categories drive the spend
- Which tools are unused or about to expire
- How the total has moved over time`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("toolspend v0.1.0")
	},
}
