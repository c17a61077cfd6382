// Command hostbridge runs scripts against an HTML page through the DOM
// bindings of a chosen browser profile.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chrisuehlinger/hostbridge/internal/config"
	"github.com/chrisuehlinger/hostbridge/internal/observability"
	"github.com/chrisuehlinger/hostbridge/js"
)

// app carries the state shared by the subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "hostbridge",
		Short:         "Run scripts against DOM host objects of an emulated browser.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml)")
	flags.StringP("profile", "p", "", "browser profile: chrome, edge, firefox, firefox-esr or ie")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("session.profile", flags.Lookup("profile"))
	_ = a.v.BindPFlag("logger.level", flags.Lookup("log-level"))

	root.AddCommand(newRunCmd(a), newMembersCmd(a))
	return root
}

// initialize reads the config file, validates the configuration and sets up
// logging. It runs before every subcommand.
func (a *app) initialize(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	observability.Initialize(cfg.Logger, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
	a.logger = observability.GetLogger()
	return nil
}

func (a *app) profile() (js.Profile, error) {
	return a.cfg.Session.BrowserProfile()
}

func main() {
	err := newRootCmd().Execute()
	observability.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
