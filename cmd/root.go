package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	Version = "0.4.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔════════════════════════════════════════════╗",
		"║   ┌─┐┬ ┬┌┐┌┌┬┐┬ ┬┌─┐┌─┐┌┐┌                  ║",
		"║   └─┐└┬┘│││ │ ├─┤│ ┬├┤ │││                  ║",
		"║   └─┘ ┴ ┘└┘ ┴ ┴ ┴└─┘└─┘┘└┘                  ║",
		"║                                            ║",
		"║   Relational synthetic data, privacy-aware ║",
		"╚════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("            ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "synthgen",
	Short: "Generate realistic, related synthetic tables from a schema",
	Long: `
synthgen builds synthetic datasets from a table schema: typed fields with
constraints, parent/child relationships, edge-case injection, cross-field
dependencies and per-field privacy strategies.

Outputs:
- JSON, CSV, SQLite and SQL dump files
- PostgreSQL, MySQL, SQLite and MongoDB databases (synthgen seed)`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("synthgen version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./synthgen.config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Development logging at debug level")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("synthgen.config")
	}

	viper.SetEnvPrefix("SYNTHGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			color.Yellow("⚠️  Could not read config %s: %v", cfgFile, err)
		}
	}
}
