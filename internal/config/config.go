package config

import (
	"errors"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 4000
)

type LoggingConfig struct {
	AccessLog             bool   `yaml:"access_log"`
	AccessLogPath         string `yaml:"access_log_path"`
	AccessLogFormat       string `yaml:"access_log_format"`
	AccessLogFormatPreset string `yaml:"access_log_format_preset"`

	accessLogSet bool `yaml:"-"`
}

func (c *LoggingConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawLogging struct {
		AccessLog             bool   `yaml:"access_log"`
		AccessLogPath         string `yaml:"access_log_path"`
		AccessLogFormat       string `yaml:"access_log_format"`
		AccessLogFormatPreset string `yaml:"access_log_format_preset"`
	}
	var raw rawLogging
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.AccessLog = raw.AccessLog
	c.AccessLogPath = raw.AccessLogPath
	c.AccessLogFormat = raw.AccessLogFormat
	c.AccessLogFormatPreset = raw.AccessLogFormatPreset
	c.accessLogSet = false

	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		if strings.TrimSpace(value.Content[i].Value) == "access_log" {
			c.accessLogSet = true
		}
	}
	return nil
}

type Config struct {
	Server struct {
		Listen         string `yaml:"listen"`
		ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
		WriteTimeoutMs int    `yaml:"write_timeout_ms"`
		// MaxConns caps concurrently accepted connections. 0 disables the cap.
		MaxConns int `yaml:"max_conns"`
	} `yaml:"server"`

	Registry struct {
		// File is an optional registry document (.toml/.yaml). Empty selects the
		// registry compiled into the binary.
		File string `yaml:"file"`
	} `yaml:"registry"`

	Logging LoggingConfig `yaml:"logging"`
}

// Load reads path and applies defaults, LANGGATE_* environment overrides and
// validation. An empty path yields the defaults with overrides applied.
func Load(path string) (*Config, error) {
	var cfg Config
	if p := strings.TrimSpace(path); p != "" {
		// #nosec G304 -- path is provided by trusted config/flag.
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, err
		}
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadIfExists is Load, except a missing file is treated as an empty one.
func LoadIfExists(path string) (*Config, error) {
	p := strings.TrimSpace(path)
	if p != "" {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			p = ""
		}
	}
	return Load(p)
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = net.JoinHostPort(DefaultHost, strconv.Itoa(DefaultPort))
	}
	if cfg.Server.ReadTimeoutMs <= 0 {
		cfg.Server.ReadTimeoutMs = 30000
	}
	if cfg.Server.WriteTimeoutMs <= 0 {
		cfg.Server.WriteTimeoutMs = 30000
	}
	// default true
	if !cfg.Logging.accessLogSet {
		cfg.Logging.AccessLog = true
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("LANGGATE_LISTEN")); v != "" {
		cfg.Server.Listen = v
	}
	if n, ok := envInt("LANGGATE_READ_TIMEOUT_MS"); ok && n > 0 {
		cfg.Server.ReadTimeoutMs = n
	}
	if n, ok := envInt("LANGGATE_WRITE_TIMEOUT_MS"); ok && n > 0 {
		cfg.Server.WriteTimeoutMs = n
	}
	if n, ok := envInt("LANGGATE_MAX_CONNS"); ok {
		cfg.Server.MaxConns = n
	}
	if v := strings.TrimSpace(os.Getenv("LANGGATE_REGISTRY_FILE")); v != "" {
		cfg.Registry.File = v
	}
	cfg.Logging.AccessLog = envBool("LANGGATE_ACCESS_LOG", cfg.Logging.AccessLog)
	if v := strings.TrimSpace(os.Getenv("LANGGATE_ACCESS_LOG_PATH")); v != "" {
		cfg.Logging.AccessLogPath = v
	}
	if v := os.Getenv("LANGGATE_ACCESS_LOG_FORMAT"); strings.TrimSpace(v) != "" {
		cfg.Logging.AccessLogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv("LANGGATE_ACCESS_LOG_FORMAT_PRESET")); v != "" {
		cfg.Logging.AccessLogFormatPreset = v
	}
}

func validate(cfg *Config) error {
	if _, port, err := net.SplitHostPort(cfg.Server.Listen); err != nil {
		return errors.New("server.listen must be host:port (e.g. 127.0.0.1:4000)")
	} else if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return errors.New("server.listen port must be within 0-65535")
	}
	if cfg.Server.MaxConns < 0 {
		return errors.New("server.max_conns must be >= 0")
	}
	return nil
}

// ApplyListen overrides the listen address with CLI host/port values. Empty
// host or zero port keep the configured part.
func (c *Config) ApplyListen(host string, port int) error {
	curHost, curPort, err := net.SplitHostPort(c.Server.Listen)
	if err != nil {
		return err
	}
	if h := strings.TrimSpace(host); h != "" {
		curHost = h
	}
	if port != 0 {
		if port < 0 || port > 65535 {
			return errors.New("port must be within 1-65535")
		}
		curPort = strconv.Itoa(port)
	}
	c.Server.Listen = net.JoinHostPort(curHost, curPort)
	return nil
}

func envInt(name string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
