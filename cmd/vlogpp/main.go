package main

import (
	"github.com/alecthomas/kong"
	"github.com/op/go-logging"

	"github.com/vlogpp/vlogpp/internal/messages"
)

var (
	version string = "dev"
	cli     struct {
		Version kong.VersionFlag
		Verbose bool       `short:"v" help:"Log each file processed."`
		Process processCmd `cmd:"" default:"withargs" help:"Preprocess Verilog source files."`
		Defines definesCmd `cmd:"" help:"List the macros defined after preprocessing."`
	}
)

func main() {
	kctx := kong.Parse(&cli,
		kong.Description(`A Verilog text macro preprocessor.`),
		kong.Configuration(kong.JSON, ".vlogpp.json", "~/.vlogpp.json"),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)
	switch {
	case cli.Process.Trace || cli.Defines.Trace:
		logLevel.SetLevel(logging.DEBUG, "")
	case cli.Verbose:
		logLevel.SetLevel(logging.INFO, "")
	}
	if err := kctx.Run(); err != nil {
		kctx.Fatalf("%s", messages.Format(err))
	}
}
