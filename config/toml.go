package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvSerialPort overrides the serial port when set
const EnvSerialPort = "TOUCHANDGO_SERIAL_PORT"

const (
	DefaultBaudRate = 115200
	DefaultSimTick  = 10 * time.Millisecond
	DefaultLogLevel = "info"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Log     LogConfig     `toml:"log"`
	Serial  SerialConfig  `toml:"serial"`
	TWChart TWChartConfig `toml:"twchart"`
	Storage StorageConfig `toml:"storage"`
	Sim     SimConfig     `toml:"sim"`
}

type LogConfig struct {
	Level *string `toml:"level"`
}

type SerialConfig struct {
	Port     *string `toml:"port"`
	BaudRate *int    `toml:"baud-rate"`
}

type TWChartConfig struct {
	Addr *string `toml:"addr"`
}

type StorageConfig struct {
	DBPath     *string `toml:"db-path"`
	ParamsPath *string `toml:"params-path"`
}

type SimConfig struct {
	Tick *string `toml:"tick"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// SerialPort resolves the port from the environment first, then the file
func (c FileConfig) SerialPort() string {
	if v := os.Getenv(EnvSerialPort); v != "" {
		return v
	}
	if c.Serial.Port != nil {
		return *c.Serial.Port
	}
	return ""
}

// SimTick parses the simulator loop interval, falling back to DefaultSimTick
func (c FileConfig) SimTick() (time.Duration, error) {
	if c.Sim.Tick == nil {
		return DefaultSimTick, nil
	}
	d, err := time.ParseDuration(*c.Sim.Tick)
	if err != nil {
		return 0, fmt.Errorf("invalid sim tick: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("sim tick must be > 0")
	}
	return d, nil
}

// ParseLevel converts a level name from the config file or flags
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(strings.TrimSpace(level)))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// DefaultConfigTemplate is written by the config command when no file exists
func DefaultConfigTemplate() string {
	return fmt.Sprintf(`# touchandgo configuration
# Uncomment a value to enable it. CLI flags override config values.

[log]
# level = %q           # debug, info, warn or error

[serial]
# port = "/dev/ttyACM0"    # also set by %s
# baud-rate = %d

[twchart]
# addr = "http://localhost:8080"

[storage]
# db-path = %q
# params-path = %q

[sim]
# tick = %q
`,
		DefaultLogLevel,
		EnvSerialPort,
		DefaultBaudRate,
		DefaultDBPath(),
		DefaultParamsPath(),
		DefaultSimTick.String(),
	)
}
