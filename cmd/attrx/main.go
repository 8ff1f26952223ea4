/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/attrx"
	"dirpx.dev/attrx/config"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	config  string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	rootCmd := &cobra.Command{
		Use:   "attrx",
		Short: "Resolve attributes through meta-attributes",
		Long: `attrx loads an attribute vocabulary from YAML and resolves attributes on its
declarations, following meta-attributes, merging repeatable attributes and
projecting values the same way the attrx library does.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configure(g)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&g.config, "config", "c", "", "engine config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log resolution events to stderr")

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// configure applies the config file, environment and logging flags to the
// global engine.
func configure(g globalFlags) error {
	var (
		cfg = config.DefaultConfig()
		err error
	)
	if g.config != "" {
		cfg, err = config.LoadFile(g.config)
	} else {
		cfg, err = config.Load(config.NewViper())
	}
	if err != nil {
		return err
	}
	attrx.SetConfig(cfg)

	if g.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		attrx.SetLogger(log)
	}
	return nil
}
