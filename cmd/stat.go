package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/foxlet/provfs/pkg/provider"
	"github.com/foxlet/provfs/pkg/stream"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli"
)

const (
	BLACK = 30 + iota
	RED
	GREEN
	YELLOW
	BLUE
	MAGENTA
	CYAN
	WHITE
)

const (
	RESET_SEQ = "\033[0m"
	COLOR_SEQ = "\033[1;" // %dm
)

func colorize(msg string, color int, colorful bool) string {
	if !colorful || msg == "" {
		return msg
	}
	return fmt.Sprintf("%s%dm%s%s", COLOR_SEQ, color, msg, RESET_SEQ)
}

func supportANSIColor(fd uintptr) bool {
	return isatty.IsTerminal(fd) && runtime.GOOS != "windows"
}

func runStat(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("stat needs a path argument")
	}
	path := c.Args()[0]

	cfg, err := setup(c)
	if err != nil {
		return err
	}

	expected, err := parseExpectedMtime(c)
	if err != nil {
		return err
	}

	p, closer, err := newProvider(cfg.ProviderConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	reader := stream.NewReader(p, path, 0, expected)
	defer reader.Close()

	size, err := getLengthSync(reader)
	if err != nil {
		return err
	}

	// The reader's validation already fetched the metadata once; a second
	// fetch here is only for the display of the modification time.
	meta, err := p.GetMetadata(&provider.GetMetadataRequest{Path: path})
	if err != nil {
		return err
	}

	colorful := supportANSIColor(os.Stdout.Fd())
	fmt.Printf("%s %s\n", colorize("path:", CYAN, colorful), path)
	fmt.Printf("%s %d\n", colorize("size:", CYAN, colorful), size)
	fmt.Printf("%s %s\n", colorize("mtime:", CYAN, colorful), meta.Info.Mtime)
	return nil
}
