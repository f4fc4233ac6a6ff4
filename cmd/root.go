package cmd

import (
	"github.com/bnema/xrepeatd/internal/config"
	"github.com/bnema/xrepeatd/internal/daemon"
	"github.com/bnema/xrepeatd/internal/logger"
	"github.com/bnema/xrepeatd/internal/x11"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version info set by main package
	Version = "0.1.0-dev"
	Commit  = "none"
	Date    = "unknown"

	repeatRate  uint16
	repeatDelay uint16
	displayName string

	rootCmd = &cobra.Command{
		Use:   "xrepeatd",
		Short: "xrepeatd - keep X keyboard repeat settings applied",
		Long: `Xrepeatd pins the keyboard auto-repeat rate and delay to the requested
values. The X server resets or bypasses per-device repeat settings when
the input device hierarchy changes (hotplug, master/slave
re-enumeration), so xrepeatd watches for hierarchy events and reasserts
the configuration whenever a new input device appears.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWatch,
	}
)

// Execute runs the root command
func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)
	rootCmd.Flags().BoolP("version", "V", false, "print version and exit")

	rootCmd.PersistentFlags().Uint16VarP(&repeatRate, "rate", "r", x11.DefaultRate, "key repeats per second (1-1000)")
	rootCmd.PersistentFlags().Uint16VarP(&repeatDelay, "delay", "d", x11.DefaultDelay, "milliseconds a key is held before repeating starts")
	rootCmd.PersistentFlags().StringVar(&displayName, "display", "", "X display to connect to (defaults to $DISPLAY)")

	// Bind flags to viper
	viper.BindPFlag("rate", rootCmd.PersistentFlags().Lookup("rate"))
	viper.BindPFlag("delay", rootCmd.PersistentFlags().Lookup("delay"))
	viper.BindPFlag("display", rootCmd.PersistentFlags().Lookup("display"))

	// Malformed flags show usage; range errors later print only the
	// message.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.Println(cmd.UsageString())
		return err
	})
}

func runWatch(cmd *cobra.Command, args []string) error {
	repeat, conf, err := loadRepeatConfig()
	if err != nil {
		return err
	}

	sess, err := x11.Connect(conf.Display)
	if err != nil {
		return err
	}
	defer sess.Close()

	logger.Debugf("connected to X display %q", conf.Display)
	return daemon.Run(sess, repeat)
}

// loadRepeatConfig merges config file and flag values and validates the
// result before anything touches the X server.
func loadRepeatConfig() (x11.RepeatConfig, *config.Config, error) {
	if err := config.Init(); err != nil {
		return x11.RepeatConfig{}, nil, err
	}
	conf := config.Get()
	if conf.Logging.LogLevel != "" {
		logger.SetLevel(conf.Logging.LogLevel)
	}

	repeat := x11.RepeatConfig{Rate: conf.Rate, Delay: conf.Delay}
	if err := repeat.Validate(); err != nil {
		return x11.RepeatConfig{}, nil, err
	}
	return repeat, conf, nil
}
