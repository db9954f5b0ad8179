package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"

	"github.com/vlogpp/vlogpp"
)

type definesCmd struct {
	PreprocessorFlags `embed:""`

	Repr  bool     `help:"Dump the parsed definitions as Go values."`
	Files []string `arg:"" optional:"" type:"existingfile" help:"Source files to process first."`
}

func (c *definesCmd) Run() error {
	pp, err := c.preprocessor()
	if err != nil {
		return err
	}
	for _, file := range c.Files {
		if err := processFile(pp, file, io.Discard); err != nil {
			return err
		}
	}
	return writeDefines(os.Stdout, pp.Definitions(), c.Repr)
}

func writeDefines(w io.Writer, defns *vlogpp.Defns, dump bool) error {
	for _, name := range defns.Names() {
		defn := defns.Lookup(name)
		var err error
		if dump {
			_, err = fmt.Fprintln(w, repr.String(defn, repr.Indent("  ")))
		} else {
			_, err = fmt.Fprintln(w, defn)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
