package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new config file",
	Long:  `Creates a new config.yaml file with default settings in the current directory.`,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := "config.yaml"

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config.yaml already exists, remove it first or use a different directory")
	}

	defaultConfig := `# toolspend configuration

upstream:
  url: https://tt-jsonserver-01.alt-tools.tech
  timeout: 15s
  # Optional basic auth
  # username: ""
  # password: ""

refresh:
  interval: 1h        # How often to reload the catalog
  retention_days: 90  # How long to keep spend history in SQLite

budget:
  monthly_limit: 30000

storage:
  path: toolspend.db

server:
  port: 8080
  host: 0.0.0.0

log:
  level: info
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Println("Created config.yaml")
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit config.yaml with your upstream catalog URL")
	fmt.Println("  2. Run: toolspend serve")

	return nil
}
