package main

import (
	"fmt"
	"os"

	"github.com/invertedv/incomereg/config"
	"github.com/invertedv/incomereg/report"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the analysis and print every step of the report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, rpt, e := build()
		if e != nil {
			return e
		}

		for _, s := range report.Stages() {
			if e = rpt.Render(cmd.OutOrStdout(), s); e != nil {
				return e
			}

			fmt.Fprintln(cmd.OutOrStdout())
		}

		return nil
	},
}

var stepCmd = &cobra.Command{
	Use:   "step <n>",
	Short: "Run the analysis and print step n (1-8) of the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, e := report.ParseStage(args[0])
		if e != nil {
			return e
		}

		_, rpt, e := build()
		if e != nil {
			return e
		}

		return rpt.Render(cmd.OutOrStdout(), st)
	},
}

var figuresCmd = &cobra.Command{
	Use:   "figures",
	Short: "Run the analysis and write the diagnostic figures as HTML and PNG",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, rpt, e := build()
		if e != nil {
			return e
		}

		for _, f := range []struct {
			prefix string
			stage  report.Stage
		}{{"raw", report.Residuals}, {"log", report.Transform}} {
			sec, e := rpt.Show(f.stage)
			if e != nil {
				return e
			}

			html, e := sec.Figure.SaveHTML(cfg.OutputDir, f.prefix)
			if e != nil {
				return e
			}

			png, e := sec.Figure.SavePNG(cfg.OutputDir, f.prefix)
			if e != nil {
				return e
			}

			for _, name := range append(html, png...) {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", name)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "run %s\n", rpt.Result().RunID)

		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileName := os.Getenv(config.EnvFile)
		if fileName == "" {
			fileName = defaultConfigFile
		}

		if e := config.Save(config.Default(), fileName); e != nil {
			return e
		}

		fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", fileName)

		return nil
	},
}
