package config

import (
	"io/ioutil"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

type BackendType string

const (
	BackendS3      BackendType = "s3"
	BackendLocal   BackendType = "local"
	BackendLevelDB BackendType = "leveldb"
)

type ProviderConf struct {
	Backend   BackendType
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
	Prefix    string

	// local backend
	Root string

	// leveldb backend
	DBPath string
}

type ReaderConfig struct {
	ProviderConfig ProviderConf

	// Max bytes requested from the provider per range call. Requests
	// larger than this are split by the dispatcher.
	ChunkSize int

	Log_level logrus.Level

	LogDir          string
	LogMaxAge       time.Duration
	LogRotationTime time.Duration
}

const DefaultChunkSize = 512 * 1024

var (
	readerConfig *ReaderConfig
	cfgLock      sync.RWMutex
)

func GetGConfig() *ReaderConfig {
	cfgLock.RLock()
	defer cfgLock.RUnlock()

	return readerConfig
}

func SetGConfig(cfg *ReaderConfig) {
	cfgLock.Lock()
	defer cfgLock.Unlock()

	readerConfig = cfg
}

// GetChunkSize is tolerant of a missing global config so that library
// callers which never call SetGConfig still get sane splitting.
func GetChunkSize() int {
	cfg := GetGConfig()
	if cfg == nil || cfg.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return cfg.ChunkSize
}

// Profile is the yaml form of the configuration, loaded by the CLI.
type Profile struct {
	Backend         string `yaml:"backend"`
	Access_key      string `yaml:"access_key"`
	Secret_key      string `yaml:"secret_key"`
	Endpoint        string `yaml:"endpoint"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Root            string `yaml:"root"`
	DBPath          string `yaml:"db_path"`
	Chunk_size      int    `yaml:"chunk_size"`
	LogDir          string `yaml:"log_dir"`
	LogMaxAge       string `yaml:"log_max_age"`
	LogRotationTime string `yaml:"log_rotation_time"`
	Log_level       string `yaml:"level"`
}

func LoadProfile(path string) (*Profile, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	profile := &Profile{}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
