/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

// Package appconfig holds process level settings. Precedence: defaults < config file < env < flags.
package appconfig

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/traas-stack/statsdump/pkg/logger"
	"gopkg.in/yaml.v3"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultID           = "localhost"
	DefaultIntervalSecs = 5
	DefaultProcRoot     = "/proc"
)

type (
	AgentConfig struct {
		// ID labels system samples, use hostname or similar
		ID string `json:"id" yaml:"id" toml:"id"`
		// IntervalSecs is kept loose so that "5", 5 and 5.0 are all accepted
		IntervalSecs interface{} `json:"intervalSecs" yaml:"intervalSecs" toml:"intervalSecs"`
		// ProcRoot is where procfs is mounted, for example /host/proc inside a container
		ProcRoot string `json:"procRoot" yaml:"procRoot" toml:"procRoot"`
		Debug    bool   `json:"debug" yaml:"debug" toml:"debug"`
	}
)

// Default returns a config with every field set to its default.
func Default() *AgentConfig {
	return &AgentConfig{
		ID:           DefaultID,
		IntervalSecs: DefaultIntervalSecs,
		ProcRoot:     DefaultProcRoot,
	}
}

// Load builds the config from the working directory. See LoadFrom.
func Load(path string) (*AgentConfig, error) {
	return LoadFrom("", path)
}

// LoadFrom builds the config. When path is empty, statsdump.yaml, conf/statsdump.yaml,
// statsdump.toml and conf/statsdump.toml under dir are tried in order and a broken file is
// reported and skipped. An explicit path must exist and parse.
func LoadFrom(dir, path string) (*AgentConfig, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	} else {
		candidates := []string{
			"statsdump.yaml",
			filepath.Join("conf", "statsdump.yaml"),
			"statsdump.toml",
			filepath.Join("conf", "statsdump.toml"),
		}
		for _, c := range candidates {
			p := filepath.Join(dir, c)
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := cfg.loadFile(p); err != nil {
				logger.Errorf("[appconfig] skip config file %s: %+v", p, err)
				continue
			}
			logger.Debugf("[appconfig] read %s", p)
			break
		}
	}

	cfg.loadEnv()
	return cfg, nil
}

func (c *AgentConfig) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(b, c)
	default:
		err = yaml.Unmarshal(b, c)
	}
	return errors.Wrapf(err, "parse config %s", path)
}

func (c *AgentConfig) loadEnv() {
	if s := os.Getenv("STATSDUMP_ID"); s != "" {
		c.ID = s
	}
	if s := os.Getenv("STATSDUMP_INTERVAL_SECS"); s != "" {
		c.IntervalSecs = s
	}
	// same variable gopsutil honours
	if s := os.Getenv("HOST_PROC"); s != "" {
		c.ProcRoot = s
	}
	if s := os.Getenv("DEBUG"); s != "" {
		c.Debug = cast.ToBool(s)
	}
	if c.ID == "" {
		c.ID = DefaultID
	}
	if c.ProcRoot == "" {
		c.ProcRoot = DefaultProcRoot
	}
}

// Interval returns the sampling interval, see ParseIntervalSecs.
func (c *AgentConfig) Interval() time.Duration {
	return ParseIntervalSecs(c.IntervalSecs)
}

// maxIntervalSecs is the largest interval a time.Duration can hold
const maxIntervalSecs = uint64(math.MaxInt64 / int64(time.Second))

// ParseIntervalSecs converts a whole number of seconds to a duration.
// Strings are read as decimal. Missing input means the default. Non-numeric, negative, zero or
// too large input also means the default, with a warning; it is never fatal.
func ParseIntervalSecs(raw interface{}) time.Duration {
	def := DefaultIntervalSecs * time.Second
	if raw == nil {
		return def
	}

	var secs uint64
	var err error
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return def
		}
		secs, err = strconv.ParseUint(s, 10, 64)
	} else {
		// numbers decoded from yaml or toml
		secs, err = cast.ToUint64E(raw)
	}
	if err == nil && secs == 0 {
		err = errors.New("interval must be positive")
	}
	if err == nil && secs > maxIntervalSecs {
		err = errors.Errorf("interval %d exceeds %d seconds", secs, maxIntervalSecs)
	}
	if err != nil {
		logger.Warnf("invalid interval (%v), using default of %d seconds", err, DefaultIntervalSecs)
		return def
	}
	return time.Duration(secs) * time.Second
}
