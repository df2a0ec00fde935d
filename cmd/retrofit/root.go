//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"github.com/e-gun/retrofitter/internal/lnch"
	"github.com/e-gun/retrofitter/internal/str"
	"github.com/e-gun/retrofitter/internal/vv"
	"github.com/spf13/cobra"
)

// app - state shared by the subcommands of one invocation
type app struct {
	cfg      *str.CurrentConfiguration
	cfgpath  string
	loglevel int
	bw       bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "retrofit",
		Short: "Retrofit word embeddings to a lexicon",
		Long: `Retrofitting pulls each word vector toward the vectors of the words a lexicon says it is
related to, while keeping it close to where it started. Relations come from a paraphrase
database (PPDB), from WordNet, or from a plain adjacency-list file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.configure,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgpath, "config", "", "configuration file (JSON, or YAML by extension)")
	pf.IntVarP(&a.loglevel, "loglevel", "g", vv.DEFAULTGOLOGLEVEL, "message level: -1 to 5")
	pf.BoolVar(&a.bw, "bw", vv.BLACKANDWHITE, "black-and-white terminal output")

	root.AddCommand(
		a.runCmd(),
		a.compareCmd(),
		a.neighborsCmd(),
		a.serveCmd(),
		a.configCmd(),
		a.versionCmd(),
	)
	return root
}

// configure - defaults, then the config file, then any flags that were set
func (a *app) configure(cmd *cobra.Command, _ []string) error {
	var err error
	if cmd.Name() == "config" || cmd.Name() == "version" {
		a.cfg = lnch.BuildDefaultConfig()
	} else if a.cfg, err = lnch.LoadConfig(a.cfgpath); err != nil {
		return err
	}

	if cmd.Flags().Changed("loglevel") {
		a.cfg.LogLevel = a.loglevel
	}
	if cmd.Flags().Changed("bw") {
		a.cfg.BlackAndWhite = a.bw
	}
	lnch.UpdateMessageMakerWithConfig(a.cfg, messengers()...)
	return nil
}
