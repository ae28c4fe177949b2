package main

import (
	"errors"
	"os"
	"time"

	"github.com/foxlet/provfs/pkg/config"
	"github.com/foxlet/provfs/pkg/logg"
	"github.com/foxlet/provfs/pkg/stream"
	"github.com/urfave/cli"
)

func setup(c *cli.Context) (*config.ReaderConfig, error) {
	cfg, err := PopulateConfig(c)
	if err != nil {
		return nil, err
	}

	config.SetGConfig(cfg)
	logg.SetLevel(cfg.Log_level)
	logg.InitLogHook(cfg.LogDir, cfg.LogMaxAge, cfg.LogRotationTime)
	logg.InitLogger()
	return cfg, nil
}

func parseExpectedMtime(c *cli.Context) (time.Time, error) {
	v := c.String(C_EXPECTED_MTIME)
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}

func runCat(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("cat needs a path argument")
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

	reader := stream.NewReader(p, path, c.Int64(C_OFFSET), expected)
	defer reader.Close()

	remaining := c.Int64(C_LENGTH)
	buf := make([]byte, config.GetChunkSize())

	for {
		want := len(buf)
		if remaining >= 0 && remaining < int64(want) {
			want = int(remaining)
		}
		if want == 0 {
			return nil
		}

		n, err := readSync(reader, buf, want)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}

		if _, err := os.Stdout.Write(buf[:n]); err != nil {
			return err
		}
		if remaining >= 0 {
			remaining -= int64(n)
		}
	}
}

func readSync(r *stream.Reader, buf []byte, length int) (int, error) {
	done := make(chan struct{})
	var gotN int
	var gotErr error
	r.Read(buf, length, func(n int, err error) {
		gotN, gotErr = n, err
		close(done)
	})
	<-done
	return gotN, gotErr
}

func getLengthSync(r *stream.Reader) (int64, error) {
	done := make(chan struct{})
	var gotSize int64
	var gotErr error
	r.GetLength(func(size int64, err error) {
		gotSize, gotErr = size, err
		close(done)
	})
	<-done
	return gotSize, gotErr
}
