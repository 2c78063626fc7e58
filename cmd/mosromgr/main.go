// SPDX-License-Identifier: Apache-2.0

// mosromgr is the command line frontend for inspecting and merging MOS
// running order messages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbc/mosromgr-sub000/internal/config"
	"github.com/bbc/mosromgr-sub000/internal/log"
)

var (
	version = "dev"

	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:           "mosromgr",
	Short:         "Detect, inspect and merge MOS running order messages",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		log.Configure(log.Config{
			Level:   cfg.LogLevel,
			Service: "mosromgr",
		})
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (YAML)")
	rootCmd.AddCommand(detectCmd, inspectCmd, mergeCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}
