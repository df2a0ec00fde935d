//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/e-gun/retrofitter/internal/chart"
	"github.com/e-gun/retrofitter/internal/diff"
	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/lex"
	"github.com/e-gun/retrofitter/internal/lnch"
	"github.com/e-gun/retrofitter/internal/vv"
	"github.com/e-gun/retrofitter/internal/web"
	"github.com/e-gun/wego/pkg/search"
	"github.com/spf13/cobra"
)

func (a *app) compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Compare two embedding files line by line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := diff.Files(args[0], args[1])
			if err != nil {
				return err
			}
			res.Report(cmd.OutOrStdout())
			return nil
		},
	}
}

func (a *app) neighborsCmd() *cobra.Command {
	var (
		k     int
		graph string
	)
	cmd := &cobra.Command{
		Use:   "neighbors <embeddings> <word>",
		Short: "List the nearest neighbors of a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			const (
				LINE = "%3d\t%.4f\t%s\n"
			)
			if !cmd.Flags().Changed("count") {
				k = a.cfg.VectorNeighb
			}
			if k < vv.VECTORNEIGHBORSMIN || k > vv.VECTORNEIGHBORSMAX {
				k = vv.VECTORNEIGHBORS
			}

			t, err := emb.LoadFile(args[0])
			if err != nil {
				return err
			}
			i, ok := t.Lookup(args[1])
			if !ok {
				return fmt.Errorf("not in the vocabulary: %q", args[1])
			}
			word := t.Word(i)

			sr, err := emb.NewSearcher(t)
			if err != nil {
				return err
			}
			nn, err := sr.SearchInternal(word, k)
			if err != nil {
				return err
			}
			for _, n := range nn {
				fmt.Fprintf(cmd.OutOrStdout(), LINE, n.Rank, n.Similarity, n.Word)
			}

			if graph == "" {
				return nil
			}
			all := map[string]search.Neighbors{word: nn}
			for _, n := range nn {
				if sub, e := sr.SearchInternal(n.Word, k); e == nil {
					all[n.Word] = sub
				}
			}
			f, err := os.Create(graph)
			if err != nil {
				return err
			}
			if err = chart.RenderNeighbors(f, word, filepath.Base(args[0]), all, a.cfg.VectorChtWd, a.cfg.VectorChtHt); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().IntVarP(&k, "count", "k", vv.VECTORNEIGHBORS, "how many neighbors")
	cmd.Flags().StringVar(&graph, "graph", "", "also write an html neighbor graph to this path")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var (
		retrofitted string
		host        string
		port        int
	)
	cmd := &cobra.Command{
		Use:   "serve <embeddings>",
		Short: "Serve vectors and neighbors over http",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				a.cfg.HostIP = host
			}
			if cmd.Flags().Changed("port") {
				a.cfg.HostPort = port
			}

			orig, err := emb.LoadFile(args[0])
			if err != nil {
				return err
			}
			var rf *emb.Table
			if retrofitted != "" {
				if rf, err = emb.LoadFile(retrofitted); err != nil {
					return err
				}
			}

			s, err := web.NewServer(a.cfg, orig, rf)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return s.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&retrofitted, "retrofitted", "", "a retrofitted table to serve beside the original")
	cmd.Flags().StringVar(&host, "host", vv.SERVEDFROMHOST, "address to listen on")
	cmd.Flags().IntVar(&port, "port", vv.SERVEDFROMPORT, "port to listen on")
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Write the default configuration and stop-word files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const (
				MSG1 = "Wrote %s"
			)
			path := a.cfgpath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				p, err := lnch.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			if err := lnch.WriteDefaultConfig(path); err != nil {
				return err
			}
			for _, l := range []lex.Language{lex.English, lex.French} {
				fn, err := lex.WriteStopConfig(filepath.Dir(path), l)
				if err != nil {
					return err
				}
				Msg.NOTE(fmt.Sprintf(MSG1, fn))
			}
			return nil
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			lnch.PrintVersion(cmd.OutOrStdout(), a.cfg)
		},
	}
}
