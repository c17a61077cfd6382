package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/hostbridge/dom"
	"github.com/chrisuehlinger/hostbridge/js"
)

const blankPage = "<!DOCTYPE html><html><head></head><body></body></html>"

func newRunCmd(a *app) *cobra.Command {
	var pagePath string

	cmd := &cobra.Command{
		Use:   "run <script.js>",
		Short: "Execute a script file and print the collected alerts.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.profile()
			if err != nil {
				return err
			}

			page := blankPage
			if pagePath != "" {
				data, err := os.ReadFile(pagePath)
				if err != nil {
					return fmt.Errorf("reading page: %w", err)
				}
				page = string(data)
			}
			code, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading script: %w", err)
			}

			doc, err := dom.ParseHTML(page)
			if err != nil {
				return fmt.Errorf("parsing page: %w", err)
			}

			rt, err := js.NewRuntime(profile, js.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer rt.Close()

			pageErrs := js.NewScriptExecutor(rt).ExecuteScripts(doc)
			for _, err := range pageErrs {
				a.logger.Warn("page script failed", zap.Error(err))
			}

			a.logger.Info("running script",
				zap.String("script", args[0]),
				zap.Stringer("profile", profile))
			runErr := rt.ExecuteScript(string(code), args[0])

			out := cmd.OutOrStdout()
			for _, msg := range rt.Alerts() {
				fmt.Fprintln(out, msg)
			}
			if runErr != nil {
				return fmt.Errorf("uncaught script error: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pagePath, "page", "", "HTML page to load (default: a blank page)")
	return cmd
}
