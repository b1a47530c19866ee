package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ServerConfig represents gateway HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" json:"port" validate:"required"`
	UIOrigin        string        `yaml:"ui_origin" json:"ui_origin" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// PXEConfig represents the connection to the PXE node
type PXEConfig struct {
	URL string `yaml:"url" json:"url" validate:"required"`
	// CallTimeout bounds each gateway operation; zero disables it
	CallTimeout  time.Duration `yaml:"call_timeout" json:"call_timeout"`
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval"`
}

// ContractsConfig points at deployment outputs
type ContractsConfig struct {
	AddressBook     string `yaml:"address_book" json:"address_book" validate:"required"`
	TokenArtifact   string `yaml:"token_artifact" json:"token_artifact" validate:"required"`
	NoteStorageSlot uint64 `yaml:"note_storage_slot" json:"note_storage_slot"`
}

// UIConfig represents the browser UI server
type UIConfig struct {
	Port       int    `yaml:"port" json:"port" validate:"required"`
	GatewayURL string `yaml:"gateway_url" json:"gateway_url" validate:"required"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

// TelemetryConfig selects OpenTelemetry exporters; empty disables one
type TelemetryConfig struct {
	Traces  string `yaml:"traces" json:"traces" validate:"omitempty,oneof=none stdout"`
	Metrics string `yaml:"metrics" json:"metrics" validate:"omitempty,oneof=none stdout"`
}

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server"`
	PXE       PXEConfig       `yaml:"pxe" json:"pxe"`
	Contracts ContractsConfig `yaml:"contracts" json:"contracts"`
	UI        UIConfig        `yaml:"ui" json:"ui"`
	Log       LogConfig       `yaml:"log" json:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
}

// DefaultConfigPaths are searched for config.yaml when LoadConfig is used
var DefaultConfigPaths = []string{".", "./config", "/etc/pxegate"}

var validate = validator.New()

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3001,
			UIOrigin:        "http://localhost:4001",
			ShutdownTimeout: 10 * time.Second,
		},
		PXE: PXEConfig{
			URL:          "http://localhost:8080",
			PollInterval: time.Second,
		},
		Contracts: ContractsConfig{
			AddressBook:     "addresses.json",
			TokenArtifact:   "contracts/token/target/Token.json",
			NoteStorageSlot: 5,
		},
		UI: UIConfig{
			Port:       4001,
			GatewayURL: "http://localhost:3001",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the application configuration
func LoadConfig() (*Config, error) {
	return Load(DefaultConfigPaths...)
}

// Load applies, in order: defaults, environment variables, and config.yaml
// from the first of paths that has one.
func Load(paths ...string) (*Config, error) {
	config := Default()

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found, use default and environment values
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		applyFile(v, config)
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func applyEnv(config *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		config.Server.Port = p
	}
	if origin := os.Getenv("UI_ORIGIN"); origin != "" {
		config.Server.UIOrigin = origin
	}
	if url := os.Getenv("PXE_URL"); url != "" {
		config.PXE.URL = url
	}
	if err := envDuration("PXE_CALL_TIMEOUT", &config.PXE.CallTimeout); err != nil {
		return err
	}
	if err := envDuration("PXE_POLL_INTERVAL", &config.PXE.PollInterval); err != nil {
		return err
	}
	if path := os.Getenv("ADDRESS_BOOK_PATH"); path != "" {
		config.Contracts.AddressBook = path
	}
	if path := os.Getenv("TOKEN_ARTIFACT_PATH"); path != "" {
		config.Contracts.TokenArtifact = path
	}
	if slot := os.Getenv("NOTE_STORAGE_SLOT"); slot != "" {
		s, err := strconv.ParseUint(slot, 10, 64)
		if err != nil {
			return fmt.Errorf("NOTE_STORAGE_SLOT: %w", err)
		}
		config.Contracts.NoteStorageSlot = s
	}
	if port := os.Getenv("UI_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("UI_PORT: %w", err)
		}
		config.UI.Port = p
	}
	if url := os.Getenv("GATEWAY_URL"); url != "" {
		config.UI.GatewayURL = url
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
	if exporter := os.Getenv("TRACES_EXPORTER"); exporter != "" {
		config.Telemetry.Traces = exporter
	}
	if exporter := os.Getenv("METRICS_EXPORTER"); exporter != "" {
		config.Telemetry.Metrics = exporter
	}
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func applyFile(v *viper.Viper, config *Config) {
	if v.IsSet("server.port") {
		config.Server.Port = v.GetInt("server.port")
	}
	if v.IsSet("server.ui_origin") {
		config.Server.UIOrigin = v.GetString("server.ui_origin")
	}
	if v.IsSet("server.shutdown_timeout") {
		config.Server.ShutdownTimeout = v.GetDuration("server.shutdown_timeout")
	}
	if v.IsSet("pxe.url") {
		config.PXE.URL = v.GetString("pxe.url")
	}
	if v.IsSet("pxe.call_timeout") {
		config.PXE.CallTimeout = v.GetDuration("pxe.call_timeout")
	}
	if v.IsSet("pxe.poll_interval") {
		config.PXE.PollInterval = v.GetDuration("pxe.poll_interval")
	}
	if v.IsSet("contracts.address_book") {
		config.Contracts.AddressBook = v.GetString("contracts.address_book")
	}
	if v.IsSet("contracts.token_artifact") {
		config.Contracts.TokenArtifact = v.GetString("contracts.token_artifact")
	}
	if v.IsSet("contracts.note_storage_slot") {
		config.Contracts.NoteStorageSlot = v.GetUint64("contracts.note_storage_slot")
	}
	if v.IsSet("ui.port") {
		config.UI.Port = v.GetInt("ui.port")
	}
	if v.IsSet("ui.gateway_url") {
		config.UI.GatewayURL = v.GetString("ui.gateway_url")
	}
	if v.IsSet("log.level") {
		config.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("telemetry.traces") {
		config.Telemetry.Traces = v.GetString("telemetry.traces")
	}
	if v.IsSet("telemetry.metrics") {
		config.Telemetry.Metrics = v.GetString("telemetry.metrics")
	}
}
