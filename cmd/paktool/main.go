package main

import (
	"os"

	"tracktools/cmd/paktool/cmd"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"
)

type CLI struct {
	Verbosity log.Level      `short:"v" help:"Set log level" default:"info"`
	List      cmd.ListCmd    `cmd:"" help:"List the entries of an archive"`
	Tree      cmd.TreeCmd    `cmd:"" help:"Show the entries of an archive as a tree"`
	Extract   cmd.ExtractCmd `cmd:"" help:"Extract every entry of an archive"`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("paktool"),
		kong.Description("Inspect and extract the game's PAK archives."),
		kong.UsageOnError(),
	}, options...)

	return kong.New(cli, options...)
}

func main() {
	args := os.Args[1:]

	// Force display help if no arguments are provided
	if len(args) == 0 {
		args = []string{"--help"}
	}

	cli := CLI{}
	parser, err := newParser(&cli)
	if err != nil {
		log.WithError(err).Fatal("Failed to create parser")
	}

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	log.SetLevel(cli.Verbosity)
	log.Debug("Starting paktool")

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
