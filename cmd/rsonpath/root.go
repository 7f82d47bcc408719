package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	rsonpath "github.com/rsonpath-go/rsonpath"
	"github.com/rsonpath-go/rsonpath/automaton"
	"github.com/rsonpath-go/rsonpath/engine"
	"github.com/rsonpath-go/rsonpath/internal/automatoncache"
	"github.com/rsonpath-go/rsonpath/internal/simdtier"
	"github.com/rsonpath-go/rsonpath/query"
	"github.com/rsonpath-go/rsonpath/result"
)

var (
	rootCmd = &cobra.Command{
		Use:           "rsonpath <query> [file]",
		Short:         "rsonpath",
		Long:          "rsonpath runs a JSONPath query against a JSON document using a streaming byte classifier and a compiled query automaton, without building an in-memory value tree.",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	verbose    bool
	engineName string
	resultName string
	compile    bool
	useMmap    bool
	cacheDir   string
)

// Execute runs the root command.
func Execute() error {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include verbose debug information")
	rootCmd.Flags().StringVarP(&engineName, "engine", "e", "main", "engine to run the query with: main, recursive, or verify-both")
	rootCmd.Flags().StringVarP(&resultName, "result", "r", "bytes", "what to report: bytes (matched byte spans) or count (match count)")
	rootCmd.Flags().BoolVarP(&compile, "compile", "c", false, "compile the query and print its automaton as a Graphviz dot digraph instead of running it")
	rootCmd.Flags().BoolVar(&useMmap, "use-mmap", false, "memory-map the input file instead of buffering it")
	rootCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for the compiled-automaton cache (default: the user cache directory)")
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	log := newLogger(verbose)

	rawQuery := args[0]
	var filePath string
	if len(args) == 2 {
		filePath = args[1]
	}

	parsed, err := query.Parse(rawQuery)
	if err != nil {
		printParseDiagnostic(cmd.ErrOrStderr(), rawQuery, err)
		return err
	}
	log.WithField("query", parsed.String()).Debug("parsed query")

	if tier, err := simdtier.Resolve(); err == nil {
		log.WithFields(logrus.Fields{
			"tier":    tier.Tier,
			"quotes":  tier.Quotes,
			"popcnt":  tier.Popcount,
			"forced":  tier.Forced,
			"env_var": simdtier.EnvVar,
		}).Debug("resolved classification tier")
	}

	dir := cacheDir
	if dir == "" {
		if d, err := automatoncache.DefaultDir(); err == nil {
			dir = d
		}
	}

	auto, err := resolveAutomaton(dir, rawQuery, parsed, log)
	if err != nil {
		return fmt.Errorf("compiling query: %w", err)
	}

	if compile {
		fmt.Fprintln(cmd.OutOrStdout(), auto.String())
		return nil
	}

	in, closeIn, err := openInput(filePath, useMmap)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer closeIn()

	out := cmd.OutOrStdout()
	switch resultName {
	case "bytes":
		return runWithRecorder(out, log, auto, in, func() recorderFinisher { return newNodesFinisher() })
	case "count":
		return runWithRecorder(out, log, auto, in, func() recorderFinisher { return newCountFinisher() })
	default:
		return fmt.Errorf("unknown --result value %q: want \"bytes\" or \"count\"", resultName)
	}
}

// recorderFinisher pairs a result.Recorder with a way to render its final
// value, so runWithRecorder can stay result-type-agnostic.
type recorderFinisher interface {
	result.Recorder
	Render() string
	Equal(other recorderFinisher) bool
}

type countFinisher struct{ *result.CountRecorder }

func newCountFinisher() recorderFinisher { return countFinisher{result.NewCountRecorder()} }
func (c countFinisher) Render() string   { return fmt.Sprintf("%d", c.Finish()) }
func (c countFinisher) Equal(other recorderFinisher) bool {
	o, ok := other.(countFinisher)
	return ok && c.Finish() == o.Finish()
}

type nodesFinisher struct{ *result.NodesRecorder }

func newNodesFinisher() recorderFinisher { return nodesFinisher{result.NewNodesRecorder()} }
func (n nodesFinisher) Render() string {
	var b []byte
	for i, span := range n.Finish() {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, span...)
	}
	return string(b)
}
func (n nodesFinisher) Equal(other recorderFinisher) bool {
	o, ok := other.(nodesFinisher)
	if !ok {
		return false
	}
	a, b := n.Finish(), o.Finish()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if string(a[i]) != string(b[i]) {
			return false
		}
	}
	return true
}

// runWithRecorder drives the engine(s) named by --engine over in, using a
// fresh recorder from newFinisher for each engine run, and prints the
// rendered result.
func runWithRecorder(out io.Writer, log logrus.FieldLogger, auto *automaton.Automaton, in rsonpath.Input, newFinisher func() recorderFinisher) error {
	switch engineName {
	case "main":
		rec := newFinisher()
		if err := engine.RunIterative(engine.Config{Automaton: auto, Input: in, Recorder: rec, Logger: log}); err != nil {
			return fmt.Errorf("running query: %w", err)
		}
		fmt.Fprintln(out, rec.Render())
		return nil
	case "recursive":
		rec := newFinisher()
		if err := engine.RunRecursive(engine.Config{Automaton: auto, Input: in, Recorder: rec, Logger: log}); err != nil {
			return fmt.Errorf("running query: %w", err)
		}
		fmt.Fprintln(out, rec.Render())
		return nil
	case "verify-both":
		iterRec := newFinisher()
		if err := engine.RunIterative(engine.Config{Automaton: auto, Input: in, Recorder: iterRec, Logger: log}); err != nil {
			return fmt.Errorf("running iterative engine: %w", err)
		}
		recRec := newFinisher()
		if err := engine.RunRecursive(engine.Config{Automaton: auto, Input: in, Recorder: recRec, Logger: log}); err != nil {
			return fmt.Errorf("running recursive engine: %w", err)
		}
		if !iterRec.Equal(recRec) {
			return errors.New("result mismatch between the iterative and recursive engines")
		}
		fmt.Fprintln(out, iterRec.Render())
		return nil
	default:
		return fmt.Errorf("unknown --engine value %q: want \"main\", \"recursive\", or \"verify-both\"", engineName)
	}
}

// resolveAutomaton consults the on-disk cache before falling back to
// automaton.Compile, warming the cache afterwards. Cache failures are
// logged, never fatal: the cache is a pure optimisation.
func resolveAutomaton(dir, rawQuery string, parsed *query.JSONPathQuery, log logrus.FieldLogger) (*automaton.Automaton, error) {
	if dir != "" {
		if cached, ok, err := automatoncache.Load(dir, rawQuery); err != nil {
			log.WithError(err).Debug("automaton cache: load failed")
		} else if ok {
			log.WithField("dir", dir).Debug("automaton cache: hit")
			return cached, nil
		}
	}

	auto, err := automaton.Compile(parsed)
	if err != nil {
		return nil, err
	}

	if dir != "" {
		if err := automatoncache.Store(dir, rawQuery, auto); err != nil {
			log.WithError(err).Debug("automaton cache: store failed")
		}
	}
	return auto, nil
}

func openInput(filePath string, mmap bool) (rsonpath.Input, func() error, error) {
	if filePath == "" {
		in, err := rsonpath.NewBufferedInput(os.Stdin)
		return in, func() error { return nil }, err
	}
	if mmap {
		in, err := rsonpath.OpenMmapInput(filePath)
		if err != nil {
			return nil, nil, err
		}
		return in, in.Close, nil
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", filePath, err)
	}
	defer f.Close()
	in, err := rsonpath.NewBufferedInput(f)
	return in, func() error { return nil }, err
}

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// printParseDiagnostic underlines the offending span of a ParseError,
// matching the original CLI's colour-highlighted parse-error report.
func printParseDiagnostic(w io.Writer, rawQuery string, err error) {
	var perr *query.ParseError
	if !errors.As(err, &perr) {
		fmt.Fprintf(w, "could not parse JSONPath query %q: %v\n", rawQuery, err)
		return
	}

	fmt.Fprintf(w, "could not parse JSONPath query: %s\n", perr.Msg)
	fmt.Fprintf(w, "  %s\n", perr.Query)
	underline := make([]byte, len(perr.Query))
	for i := range underline {
		underline[i] = ' '
	}
	to := perr.To
	if to <= perr.From {
		to = perr.From + 1
	}
	for i := perr.From; i < to && i < len(underline); i++ {
		underline[i] = '^'
	}
	fmt.Fprintf(w, "  %s\n", underline)
}
