package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vlogpp/vlogpp"
	"github.com/vlogpp/vlogpp/internal/messages"
)

// PreprocessorFlags are shared by every command that preprocesses source.
type PreprocessorFlags struct {
	Include        []string `short:"I" type:"existingdir" placeholder:"DIR" help:"Add a directory to the include search path."`
	Define         []string `short:"D" placeholder:"NAME[=VALUE]" help:"Define a macro before processing."`
	Strict         bool     `help:"Reject redefinition of a macro with different text."`
	LineDirectives bool     `help:"Emit line directives around included files."`
	MaxIncludes    int      `default:"64" help:"Maximum nesting of included files."`
	Trace          bool     `help:"Log definitions, expansions and includes."`
}

func (f *PreprocessorFlags) preprocessor() (*vlogpp.Preprocessor, error) {
	options := []vlogpp.Option{
		vlogpp.IncludeDirs(f.Include...),
		vlogpp.Defines(f.Define...),
		vlogpp.MaxIncludeDepth(f.MaxIncludes),
	}
	if f.Strict {
		options = append(options, vlogpp.Strict())
	}
	if f.LineDirectives {
		options = append(options, vlogpp.LineDirectives())
	}
	if f.Trace {
		options = append(options, vlogpp.Trace(&traceWriter{}))
	}
	return vlogpp.New(options...)
}

type processCmd struct {
	PreprocessorFlags `embed:""`

	Output string   `short:"o" type:"path" help:"Output file (stdout if omitted)." xor:"output"`
	OutDir string   `type:"path" help:"Process each file independently, in parallel, writing results to this directory." xor:"output"`
	Jobs   int      `short:"j" help:"Number of files processed in parallel with --out-dir (default: number of CPUs)."`
	Files  []string `arg:"" optional:"" type:"existingfile" help:"Source files (stdin if omitted)."`
}

func (c *processCmd) Help() string {
	return `
Without --out-dir the files are processed in order as one compilation unit:
macros defined in one file are visible in the files that follow it, and the
results are concatenated.

With --out-dir each file is processed on its own, starting from the macros
given with -D, and written to a file of the same name in the directory.
`
}

func (c *processCmd) Run() error {
	if c.OutDir != "" {
		return c.runParallel(context.Background())
	}
	pp, err := c.preprocessor()
	if err != nil {
		return err
	}
	var out io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if len(c.Files) == 0 {
		return pp.Process("<stdin>", os.Stdin, out)
	}
	for _, file := range c.Files {
		if err := processFile(pp, file, out); err != nil {
			return err
		}
	}
	return nil
}

func (c *processCmd) runParallel(ctx context.Context) error {
	if len(c.Files) == 0 {
		return fmt.Errorf("--out-dir requires at least one file")
	}
	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return err
	}
	jobs := c.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, file := range c.Files {
		file := file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each file gets its own definitions and recursion guard.
			pp, err := c.preprocessor()
			if err != nil {
				return err
			}
			if err := processFileTo(pp, file, filepath.Join(c.OutDir, filepath.Base(file))); err != nil {
				logger.Infof("%s failed: %s", file, messages.Format(err))
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func processFile(pp *vlogpp.Preprocessor, file string, w io.Writer) error {
	r, err := os.Open(file)
	if err != nil {
		return err
	}
	defer r.Close()
	logger.Infof("processing %s", file)
	return pp.Process(file, r, w)
}

// processFileTo writes the result to output, leaving no output file if
// processing fails.
func processFileTo(pp *vlogpp.Preprocessor, file, output string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	text, err := pp.ProcessString(file, string(data))
	if err != nil {
		return err
	}
	logger.Infof("%s -> %s", file, output)
	return os.WriteFile(output, []byte(text), 0o644)
}
