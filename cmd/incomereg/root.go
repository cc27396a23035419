package main

import (
	"os"

	"github.com/invertedv/incomereg/config"
	"github.com/invertedv/incomereg/pipeline"
	"github.com/invertedv/incomereg/report"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

const defaultConfigFile = "incomereg.yaml"

var rootCmd = &cobra.Command{
	Use:          "incomereg",
	Short:        "Regress county median income on education and settlement type",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd, stepCmd, figuresCmd, initCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(os.Getenv(config.EnvFile))
}

// build loads the configuration, runs the pipeline and wraps the result in a report.
func build() (*config.Config, *report.Report, error) {
	var (
		cfg *config.Config
		res *pipeline.Result
		rpt *report.Report
		e   error
	)
	if cfg, e = loadConfig(); e != nil {
		return nil, nil, e
	}

	edu, unemp, closer, e := cfg.Sources()
	if e != nil {
		return nil, nil, e
	}

	defer func() {
		if ec := closer(); ec != nil {
			klog.ErrorS(ec, "closing sources")
		}
	}()

	if res, e = pipeline.Run(edu, unemp); e != nil {
		return nil, nil, e
	}

	if rpt, e = report.New(res); e != nil {
		return nil, nil, e
	}

	return cfg, rpt, nil
}
