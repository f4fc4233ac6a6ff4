package cmd

import (
	"github.com/bnema/xrepeatd/internal/logger"
	"github.com/bnema/xrepeatd/internal/x11"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Set the repeat rate and delay once and exit",
	Long: `Apply the configured repeat rate and delay to the core keyboard without
staying around to watch for device changes. Useful from scripts and
session startup files.`,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	repeat, conf, err := loadRepeatConfig()
	if err != nil {
		return err
	}

	sess, err := x11.Connect(conf.Display)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.UseKeyboardExtension(); err != nil {
		return err
	}
	if err := sess.ApplyRepeat(repeat); err != nil {
		return err
	}

	logger.Infof("keyboard repeat set: rate=%d/s delay=%dms interval=%dms",
		repeat.Rate, repeat.Delay, repeat.Interval())
	return nil
}
