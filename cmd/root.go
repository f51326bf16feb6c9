package cmd

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/agentuity/go-common/tui"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version string = "dev"
	Commit  string = "dev"
	Date    string
)

var cfgFile string

var logoColor = lipgloss.AdaptiveColor{Light: "#11c7b9", Dark: "#00FFFF"}
var logoBox = lipgloss.NewStyle().
	Width(52).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(logoColor).
	Padding(0, 1).
	AlignVertical(lipgloss.Top).
	AlignHorizontal(lipgloss.Left).
	Foreground(logoColor)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pathfilter",
	Short: "pathfilter decides whether a set of changed paths matches a set of glob patterns.",
	PreRun: func(cmd *cobra.Command, args []string) {
		cmd.Long = logoBox.Render(fmt.Sprintf(`%s     %s

Version: %s
`,
			tui.Bold("⊙ pathfilter"),
			tui.Muted("Glob-based change detection for CI"),
			Version,
		))
	},
	Run: func(cmd *cobra.Command, args []string) {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Println(Version)
			return
		}
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "print out the version")
	rootCmd.Flags().MarkHidden("version")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pathfilter/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "The log level to use")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit structured JSON logs instead of text")

	viper.BindPFlag("pathfilter.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("pathfilter.log_json", rootCmd.PersistentFlags().Lookup("log-json"))

	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		dir := filepath.Join(home, ".config", "pathfilter")
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0700); err != nil {
				log.Fatalf("failed to create config directory (%s): %s", dir, err)
			}
		}
		cfgFile = filepath.Join(dir, "config.yaml")
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("pathfilter")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(*fs.PathError); !ok {
			log.Fatalf("Error reading config file: %s\n", err)
		}
	}
}
