// Command incomereg runs the county income regression and prints its report.
//
// It takes no flags. The config file is named by INCOMEREG_CONFIG; every setting can also be
// given as an INCOMEREG_ environment variable.
package main

import (
	"os"

	"k8s.io/klog/v2"
)

func main() {
	e := rootCmd.Execute()
	klog.Flush()

	if e != nil {
		os.Exit(1)
	}
}
