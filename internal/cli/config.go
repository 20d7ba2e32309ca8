package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/123ABCabcdpogj/analysis-AI/internal/config"
	"github.com/123ABCabcdpogj/analysis-AI/internal/emoji"
)

// defaultConfigFile is written by config init when no path is given
const defaultConfigFile = ".sitescan.yaml"

// loadGlobalConfig loads configuration honouring --config. It also returns
// the file the configuration came from, or "" when only defaults applied.
func loadGlobalConfig() (*config.Config, string, error) {
	loader := config.NewLoader()
	cfg, err := loader.LoadConfig(cfgFile)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}

	path := cfgFile
	if path == "" {
		path, _ = loader.FindConfigFile()
	}
	return cfg, path, nil
}

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sitescan configuration",
		Long: `Manage sitescan configuration files and settings.

The config command provides subcommands for initializing, viewing,
validating, and locating configuration files.`,
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
		user       bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new sitescan configuration file with default values.

By default, creates a full configuration file with all options and comments.
Use --minimal for a compact configuration with only essential settings.`,
		Example: `  # Create full config in current directory
  sitescan config init

  # Create minimal config
  sitescan config init --minimal

  # Create config in the user config directory
  sitescan config init --user

  # Overwrite existing config
  sitescan config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			switch {
			case outputPath != "":
			case user:
				outputPath = config.UserConfigPath()
			default:
				outputPath = defaultConfigFile
			}

			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			content := config.SampleConfig()
			if minimal {
				content = config.MinimalSampleConfig()
			}

			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Fprintf(out, "%s Configuration file created at: %s\n", emoji.GetEmoji("success"), outputPath)
			if minimal {
				fmt.Fprintf(out, "%s Created minimal configuration with essential settings\n", emoji.GetEmoji("report"))
			} else {
				fmt.Fprintf(out, "%s Created full configuration with all options and documentation\n", emoji.GetEmoji("report"))
			}

			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "path", "p", "", "path for the new config file (default: .sitescan.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")
	initCmd.Flags().BoolVar(&user, "user", false, "write to the user config directory")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current effective configuration after loading from all sources.

Shows the merged configuration from defaults, the config file and environment
variable overrides. API keys are masked.`,
		Example: `  # Show config in YAML format
  sitescan config show

  # Show config in JSON format
  sitescan config show --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadGlobalConfig()
			if err != nil {
				return err
			}

			shown := *cfg
			if shown.AI.APIKey != "" {
				shown.AI.APIKey = maskSecret(shown.AI.APIKey)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := json.MarshalIndent(&shown, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(&shown)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				fmt.Fprint(out, string(data))
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}

			return nil
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate a sitescan configuration file for syntax and semantic errors.

Checks the configuration file for:
- Valid YAML syntax
- Known AI provider and sensible temperature
- Progress simulation settings
- Valid values for enums`,
		Example: `  # Validate current config
  sitescan config validate

  # Validate specific config file
  sitescan config validate --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, path, err := loadGlobalConfig()
			if err != nil {
				fmt.Fprintf(out, "%s Configuration validation failed:\n", emoji.GetEmoji("error"))
				fmt.Fprintf(out, "   %v\n", err)
				return err
			}

			fmt.Fprintf(out, "%s Configuration is valid\n", emoji.GetEmoji("success"))

			if path == "" {
				path = "(defaults)"
			}
			fmt.Fprintf(out, "%s Configuration summary:\n", emoji.GetEmoji("config"))
			fmt.Fprintf(out, "   Source: %s\n", path)
			fmt.Fprintf(out, "   Version: %s\n", cfg.Version)
			fmt.Fprintf(out, "   AI Provider: %s (%s)\n", cfg.AI.Provider, cfg.AI.Model)
			fmt.Fprintf(out, "   API Key: %s\n", keyStatus(cfg.AI.APIKey))
			fmt.Fprintf(out, "   Progress: +%d every %s, capped at %d%%\n", cfg.Scan.Increment, cfg.Scan.TickInterval, cfg.Scan.Cap)
			fmt.Fprintf(out, "   Output Format: %s\n", cfg.Output.DefaultFormat)

			return nil
		},
	}
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths sitescan searches for configuration files.

Shows the search order and indicates which files exist.`,
		Example: `  # Show config search paths
  sitescan config path`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Configuration file search paths (in priority order):\n\n", emoji.GetEmoji("folder"))

			loader := config.NewLoader()
			priority := []string{"Highest", "Medium", "Lowest"}
			for i, path := range loader.Paths() {
				exists := " " + emoji.GetEmoji("error") + " (not found)"
				if fileExists(path) {
					exists = " " + emoji.GetEmoji("success") + " (exists)"
				}

				fmt.Fprintf(out, "  %d. %s%s\n", i+1, path, exists)
				if i < len(priority) {
					fmt.Fprintf(out, "     Priority: %s\n", priority[i])
				}
				fmt.Fprintln(out)
			}

			if currentConfig, found := loader.FindConfigFile(); found {
				fmt.Fprintf(out, "%s Current config file: %s\n", emoji.GetEmoji("config"), currentConfig)
			} else {
				fmt.Fprintf(out, "%s No config file found, using defaults\n", emoji.GetEmoji("info"))
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s Environment variables with SITESCAN_ prefix will override file settings\n", emoji.GetEmoji("info"))
		},
	}
}

// maskSecret keeps the last four characters of s
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

func keyStatus(key string) string {
	if key == "" {
		return "not set"
	}
	return "set (" + maskSecret(key) + ")"
}

// Helper function to check if file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
