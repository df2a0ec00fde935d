//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/e-gun/retrofitter/internal/chart"
	"github.com/e-gun/retrofitter/internal/db"
	"github.com/e-gun/retrofitter/internal/emb"
	"github.com/e-gun/retrofitter/internal/gen"
	"github.com/e-gun/retrofitter/internal/lex"
	"github.com/e-gun/retrofitter/internal/lnch"
	"github.com/e-gun/retrofitter/internal/mm"
	"github.com/e-gun/retrofitter/internal/retro"
	"github.com/e-gun/retrofitter/internal/wordnet"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

const (
	USAGE    = "Usage: retrofit run <embeddings_file_path> <language> <lexicon> <iterations> <output_file_path>"
	LANGS    = "Possible languages: eng or fra (case insensitive)"
	LEXICA   = "Possible lexicons: PPDB or WordNet(WN) or WordNet+(WN+) or file (case insensitive)"
	ITERS    = "Iterations should be a non-negative integer."
	OUTFILE  = "Output file should be a .txt (or .txt.gz) file."
	LEXFILE  = "The 'file' lexicon needs --lexicon-path."
	NOOUTDIR = "Output directory '%s' does not exist."
)

// job - one validated retrofitting request
type job struct {
	input    string
	lang     lex.Language
	lexicon  string
	extended bool
	iters    int
	output   string
	chart    string
	cpuprof  bool
	memprof  bool
}

// usage - an error that carries the usage line
func usage(detail string) error {
	return fmt.Errorf("%s\n%s", USAGE, detail)
}

// parsejob - validate the five positional arguments
func parsejob(args []string, lexiconpath string) (job, error) {
	var j job
	if len(args) != 5 {
		return j, usage(fmt.Sprintf("expected 5 arguments, got %d", len(args)))
	}
	j.input = args[0]

	l, err := lex.ParseLanguage(strings.ToLower(args[1]))
	if err != nil {
		return j, usage(LANGS)
	}
	j.lang = l

	switch strings.ToLower(args[2]) {
	case "ppdb":
		j.lexicon = "ppdb"
	case "wordnet", "wn":
		j.lexicon = "wordnet"
	case "wordnet+", "wn+":
		j.lexicon = "wordnet"
		j.extended = true
	case "file":
		if lexiconpath == "" {
			return j, usage(LEXFILE)
		}
		j.lexicon = "file"
	default:
		return j, usage(LEXICA)
	}

	if !digits(args[3]) {
		return j, usage(ITERS)
	}
	j.iters, err = strconv.Atoi(args[3])
	if err != nil {
		return j, usage(ITERS)
	}

	j.output = args[4]
	if !strings.HasSuffix(j.output, ".txt") && !strings.HasSuffix(j.output, ".txt.gz") {
		return j, usage(OUTFILE)
	}
	dir := filepath.Dir(j.output)
	if fi, e := os.Stat(dir); e != nil || !fi.IsDir() {
		return j, fmt.Errorf(NOOUTDIR, dir)
	}
	return j, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (a *app) runCmd() *cobra.Command {
	var (
		alpha   float64
		mode    string
		workers int
		ppdb    string
		wndb    string
		lexpath string
		chtpath string
		store   string
		cpuprof bool
		memprof bool
	)

	cmd := &cobra.Command{
		Use:   "run <embeddings> <language> <lexicon> <iterations> <output>",
		Short: "Retrofit an embedding file and write the result",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 5 {
				return usage(fmt.Sprintf("expected 5 arguments, got %d", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("alpha") {
				a.cfg.Alpha = alpha
			}
			if f.Changed("mode") {
				a.cfg.UpdateMode = mode
			}
			if f.Changed("workers") {
				a.cfg.WorkerCount = workers
			}
			if f.Changed("ppdb") {
				a.cfg.PPDBEng = ppdb
				a.cfg.PPDBFra = ppdb
			}
			if f.Changed("wordnet-db") {
				a.cfg.WordNetDB = wndb
			}
			if f.Changed("lexicon-path") {
				a.cfg.LexiconPath = lexpath
			}
			if f.Changed("store") {
				a.cfg.Store = store
			}
			if f.Changed("cpuprofile") {
				a.cfg.ProfileCPU = cpuprof
			}
			if f.Changed("memprofile") {
				a.cfg.ProfileMEM = memprof
			}

			j, err := parsejob(args, a.cfg.LexiconPath)
			if err != nil {
				return err
			}
			j.chart = chtpath
			j.cpuprof = a.cfg.ProfileCPU
			j.memprof = a.cfg.ProfileMEM

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.retrofit(ctx, j)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&alpha, "alpha", 0, "weight of a word's original vector in every update (default from config: 1)")
	f.StringVar(&mode, "mode", "", "update order: gauss-seidel or jacobi (default from config: gauss-seidel)")
	f.IntVar(&workers, "workers", 0, "jacobi workers (default from config: NumCPU)")
	f.StringVar(&ppdb, "ppdb", "", "paraphrase file; overrides the per-language default")
	f.StringVar(&wndb, "wordnet-db", "", "WordNet sqlite database")
	f.StringVar(&lexpath, "lexicon-path", "", "adjacency-list lexicon for the 'file' lexicon")
	f.StringVar(&chtpath, "chart", "", "write an html convergence chart to this path")
	f.StringVar(&store, "store", "", "keep and reuse results: none, sqlite, or psql")
	f.BoolVar(&cpuprof, "cpuprofile", false, "write a cpu profile to the working directory")
	f.BoolVar(&memprof, "memprofile", false, "write a memory profile to the working directory")
	return cmd
}

// source - the relation source a job asks for, plus whatever must be closed after
func (a *app) source(j job) (lex.Source, string, func(), error) {
	const (
		MSG1 = "Using %s stop words"
	)
	noop := func() {}
	switch j.lexicon {
	case "wordnet":
		w, err := wordnet.Open(a.cfg.WordNetDB)
		if err != nil {
			return nil, "", noop, err
		}
		return lex.NewWordNet(w, j.extended), a.cfg.WordNetDB, func() { _ = w.Close() }, nil
	case "file":
		return lex.NewAdjacency(a.cfg.LexiconPath), a.cfg.LexiconPath, noop, nil
	default:
		dir, err := lnch.ConfigDir()
		if err != nil {
			dir = ""
		}
		stops, err := lex.ReadStopConfig(dir, j.lang)
		if err != nil {
			return nil, "", noop, err
		}
		Msg.FYI(fmt.Sprintf(MSG1, mm.Count(len(stops))))
		path := a.cfg.PPDBEng
		if j.lang == lex.French {
			path = a.cfg.PPDBFra
		}
		return lex.NewPPDB(path, j.lang, stops), path, noop, nil
	}
}

// retrofit - read, build the lexicon, run, write; a configured store can answer the whole job
func (a *app) retrofit(ctx context.Context, j job) error {
	const (
		MSG2 = "Stored this run as %s"
		WRN1 = "Only one profile at a time: skipping the memory profile"
		WRN2 = "Could not store the result: %s"
		SETS = "%s; %s; %d iterations; alpha %g; %s"
	)

	start := time.Now()

	switch {
	case j.cpuprof:
		if j.memprof {
			Msg.WARN(WRN1)
		}
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case j.memprof:
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	mode, err := retro.ParseMode(a.cfg.UpdateMode)
	if err != nil {
		return err
	}
	o := retro.Options{
		Iterations: j.iters,
		Alpha:      a.cfg.Alpha,
		Mode:       mode,
		Workers:    a.cfg.WorkerCount,
	}
	if err = o.Validate(); err != nil {
		return err
	}

	src, srcpath, done, err := a.source(j)
	if err != nil {
		return err
	}
	defer done()

	store, err := db.Open(ctx, a.cfg)
	if err != nil {
		return err
	}
	var fp string
	if store != nil {
		defer store.Close()
		fp, err = a.fingerprint(j, src, srcpath, mode)
		if err != nil {
			return err
		}
		if t := stored(ctx, store, fp); t != nil {
			return t.SaveFile(j.output)
		}
	}

	table, err := emb.LoadFile(j.input)
	if err != nil {
		return err
	}
	g, err := lex.Build(ctx, src, j.lang)
	if err != nil {
		return err
	}

	out, rep, err := retro.Run(ctx, table, g, o)
	if err != nil {
		return err
	}
	if err = out.SaveFile(j.output); err != nil {
		return err
	}

	if store != nil {
		if id, e := store.Add(ctx, fp, out); e != nil {
			Msg.WARN(fmt.Sprintf(WRN2, e.Error()))
		} else {
			Msg.FYI(fmt.Sprintf(MSG2, id))
		}
	}

	if j.chart != "" {
		settings := fmt.Sprintf(SETS, filepath.Base(j.input), j.lexicon, j.iters, o.Alpha, mode)
		if err = chart.WriteConvergence(j.chart, rep.Iterations, settings, a.cfg.VectorChtWd, a.cfg.VectorChtHt); err != nil {
			return err
		}
	}

	Msg.Timer("Z", "Finished", start, start)
	return nil
}

// stored - the table kept under a fingerprint; store failures are reported and treated as a miss
func stored(ctx context.Context, store db.Store, fp string) *emb.Table {
	const (
		MSG1 = "Found a stored result for this run (%s)"
		WRN1 = "Could not consult the store: %s"
	)
	ok, err := store.Check(ctx, fp)
	if err != nil {
		Msg.WARN(fmt.Sprintf(WRN1, err.Error()))
		return nil
	}
	if !ok {
		return nil
	}
	Msg.NOTE(fmt.Sprintf(MSG1, fp))
	t, err := store.Fetch(ctx, fp)
	if err != nil {
		Msg.WARN(fmt.Sprintf(WRN1, err.Error()))
		return nil
	}
	return t
}

// fingerprint - the store key for a job
func (a *app) fingerprint(j job, src lex.Source, srcpath string, mode retro.Mode) (string, error) {
	k, err := db.NewRunKey(j.input)
	if err != nil {
		return "", err
	}
	k.Language = j.lang.String()
	k.Lexicon = j.lexicon
	if j.extended {
		k.Lexicon += "+"
	}
	if err = k.SetSource(srcpath); err != nil {
		return "", err
	}
	k.Iterations = j.iters
	k.Alpha = a.cfg.Alpha
	k.Mode = mode.String()
	if p, ok := src.(*lex.PPDB); ok {
		k.Stops = gen.StringMapKeysIntoSlice(p.Stops)
	}
	return k.Fingerprint(), nil
}
