package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/foxlet/provfs/pkg/config"
	"github.com/foxlet/provfs/pkg/provider"
	"github.com/foxlet/provfs/pkg/stream"
	"github.com/foxlet/provfs/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	// flags
	C_PROFILE           = "profile"
	C_BACKEND           = "backend"
	C_ENDPOINT          = "endpoint"
	C_BUCKET            = "bucket"
	C_ACCESS_KEY        = "access_key"
	C_SECRET_KEY        = "secret_key"
	C_PREFIX            = "prefix"
	C_ROOT              = "root"
	C_DB_PATH           = "db_path"
	C_CHUNK_SIZE        = "chunk_size"
	C_LEVEL             = "level"
	C_LOG_DIR           = "log_dir"
	C_LOG_MAX_AGE       = "log_max_age"
	C_LOG_ROTATION_TIME = "log_rotation_time"

	C_OFFSET         = "offset"
	C_LENGTH         = "length"
	C_EXPECTED_MTIME = "expected_mtime"
)

func VersionPointer(c *cli.Context) {
	fmt.Printf("%v", c.App.Version)
}

func NewApp() *cli.App {
	cli.VersionPrinter = VersionPointer

	version := "PROVFS Version: " + types.PROVFS_VERSION + "\n" +
		"  Commit ID: " + types.COMMIT_ID + "\n" +
		"  Build: " + types.BUILD_TIME + "\n" +
		"  Go Version: " + types.GO_VERSION + "\n"

	app := &cli.App{
		Name:     "provfs",
		HideHelp: false,
		Version:  version,
		Usage:    "provfs [global options] <command> <path>",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  C_PROFILE,
				Usage: "yaml profile with backend settings",
			},
			cli.StringFlag{
				Name:  C_BACKEND,
				Usage: "backend type: s3 | local | leveldb",
				Value: string(config.BackendLocal),
			},
			cli.StringFlag{
				Name:  C_ENDPOINT,
				Usage: "s3 endpoint",
			},
			cli.StringFlag{
				Name:  C_BUCKET,
				Usage: "s3 bucket",
			},
			cli.StringFlag{
				Name:  C_ACCESS_KEY,
				Usage: "s3 access key",
			},
			cli.StringFlag{
				Name:  C_SECRET_KEY,
				Usage: "s3 secret key",
			},
			cli.StringFlag{
				Name:  C_PREFIX,
				Usage: "key prefix prepended to every path",
			},
			cli.StringFlag{
				Name:  C_ROOT,
				Usage: "root directory of the local backend",
				Value: ".",
			},
			cli.StringFlag{
				Name:  C_DB_PATH,
				Usage: "database directory of the leveldb backend",
			},
			cli.IntFlag{
				Name:  C_CHUNK_SIZE,
				Usage: "max bytes per provider range read",
			},
			cli.StringFlag{
				Name:  C_LEVEL,
				Usage: "log level: debug | info | warn | error",
				Value: types.DEFAULT_LEVEL,
			},
			cli.StringFlag{
				Name:  C_LOG_DIR,
				Usage: "write rotating logs into this directory instead of syslog",
			},
			cli.StringFlag{
				Name:  C_LOG_MAX_AGE,
				Usage: "how long rotated logs are kept",
			},
			cli.StringFlag{
				Name:  C_LOG_ROTATION_TIME,
				Usage: "how often logs rotate",
			},
		},
		Commands: []cli.Command{
			{
				Name:      "cat",
				Usage:     "stream a file to stdout",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					cli.Int64Flag{
						Name:  C_OFFSET,
						Usage: "initial read offset",
					},
					cli.Int64Flag{
						Name:  C_LENGTH,
						Usage: "max bytes to read, -1 for the whole file",
						Value: -1,
					},
					cli.StringFlag{
						Name:  C_EXPECTED_MTIME,
						Usage: "RFC3339 modification time the file is expected to have; empty disables the check",
					},
				},
				Action: runCat,
			},
			{
				Name:      "stat",
				Usage:     "print a file's length and modification time",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:  C_EXPECTED_MTIME,
						Usage: "RFC3339 modification time the file is expected to have; empty disables the check",
					},
				},
				Action: runStat,
			},
		},
	}

	return app
}

func PopulateConfig(c *cli.Context) (*config.ReaderConfig, error) {
	cfg := &config.ReaderConfig{
		ChunkSize:       c.GlobalInt(C_CHUNK_SIZE),
		LogDir:          c.GlobalString(C_LOG_DIR),
		LogMaxAge:       types.DEFAULT_LOG_MAX_AGE,
		LogRotationTime: types.DEFAULT_LOG_ROTATION_TIME,
	}
	cfg.ProviderConfig = config.ProviderConf{
		Backend:   config.BackendType(c.GlobalString(C_BACKEND)),
		Endpoint:  c.GlobalString(C_ENDPOINT),
		Bucket:    c.GlobalString(C_BUCKET),
		AccessKey: c.GlobalString(C_ACCESS_KEY),
		SecretKey: c.GlobalString(C_SECRET_KEY),
		Prefix:    c.GlobalString(C_PREFIX),
		Root:      c.GlobalString(C_ROOT),
		DBPath:    c.GlobalString(C_DB_PATH),
	}

	level := c.GlobalString(C_LEVEL)
	maxAge := c.GlobalString(C_LOG_MAX_AGE)
	rotationTime := c.GlobalString(C_LOG_ROTATION_TIME)

	if profilePath := c.GlobalString(C_PROFILE); profilePath != "" {
		profile, err := config.LoadProfile(profilePath)
		if err != nil {
			return nil, err
		}
		applyProfile(c, cfg, profile)
		if profile.Log_level != "" && !c.GlobalIsSet(C_LEVEL) {
			level = profile.Log_level
		}
		if profile.LogMaxAge != "" && maxAge == "" {
			maxAge = profile.LogMaxAge
		}
		if profile.LogRotationTime != "" && rotationTime == "" {
			rotationTime = profile.LogRotationTime
		}
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %v", level, err)
	}
	cfg.Log_level = logLevel

	if maxAge != "" {
		d, err := time.ParseDuration(maxAge)
		if err != nil {
			return nil, err
		}
		cfg.LogMaxAge = d
	}
	if rotationTime != "" {
		d, err := time.ParseDuration(rotationTime)
		if err != nil {
			return nil, err
		}
		cfg.LogRotationTime = d
	}

	return cfg, nil
}

// Flags win over the profile; the profile only fills what the command line
// left unset.
func applyProfile(c *cli.Context, cfg *config.ReaderConfig, profile *config.Profile) {
	pc := &cfg.ProviderConfig
	if profile.Backend != "" && !c.GlobalIsSet(C_BACKEND) {
		pc.Backend = config.BackendType(profile.Backend)
	}
	if profile.Endpoint != "" && !c.GlobalIsSet(C_ENDPOINT) {
		pc.Endpoint = profile.Endpoint
	}
	if profile.Bucket != "" && !c.GlobalIsSet(C_BUCKET) {
		pc.Bucket = profile.Bucket
	}
	if profile.Access_key != "" && !c.GlobalIsSet(C_ACCESS_KEY) {
		pc.AccessKey = profile.Access_key
	}
	if profile.Secret_key != "" && !c.GlobalIsSet(C_SECRET_KEY) {
		pc.SecretKey = profile.Secret_key
	}
	if profile.Prefix != "" && !c.GlobalIsSet(C_PREFIX) {
		pc.Prefix = profile.Prefix
	}
	if profile.Root != "" && !c.GlobalIsSet(C_ROOT) {
		pc.Root = profile.Root
	}
	if profile.DBPath != "" && !c.GlobalIsSet(C_DB_PATH) {
		pc.DBPath = profile.DBPath
	}
	if profile.Chunk_size > 0 && !c.GlobalIsSet(C_CHUNK_SIZE) {
		cfg.ChunkSize = profile.Chunk_size
	}
	if profile.LogDir != "" && !c.GlobalIsSet(C_LOG_DIR) {
		cfg.LogDir = profile.LogDir
	}
}

// newProvider builds the configured backend and wires up metrics. The
// returned closer releases backend resources and is safe to call on every
// path.
func newProvider(conf config.ProviderConf) (provider.Provider, io.Closer, error) {
	_, registerer := stream.InitMetricRegistry(string(conf.Backend), conf.Bucket)
	stream.RegistMetrics(registerer)

	switch conf.Backend {
	case config.BackendS3:
		if conf.Endpoint == "" || conf.Bucket == "" {
			return nil, nil, errors.New("s3 backend needs --endpoint and --bucket")
		}
		p, err := provider.NewS3Provider(conf, registerer)
		if err != nil {
			return nil, nil, err
		}
		return p, nopCloser{}, nil
	case config.BackendLocal:
		return provider.NewLocalProvider(conf.Root), nopCloser{}, nil
	case config.BackendLevelDB:
		if conf.DBPath == "" {
			return nil, nil, errors.New("leveldb backend needs --db_path")
		}
		p, err := provider.NewLevelDBProvider(conf.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", conf.Backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
