package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort         = 8080
	DefaultHost         = "127.0.0.1"
	DefaultLogLevel     = "info"
	DefaultCodePrefix   = "RTEC"
	DefaultLogoWidthCM  = 3.5
	MinLogoWidthCM      = 1.0
	MaxLogoWidthCM      = 12.0
	DefaultMaxLogoSize  = 5 * 1024 * 1024   // 5MB
	DefaultMaxFileSize  = 100 * 1024 * 1024 // 100MB
	DefaultDraftsDir    = "drafts"
	DefaultOutputDir    = "out"
	EnvPrefix           = "REPORT_AUTHOR"
	DefaultServerName   = "mcp-report-author"
	DefaultVersion      = "1.0.0"
	DefaultDirPerm      = 0o750
	defaultConfigFormat = "yaml"
)

// ErrVersionRequested is returned when the arguments ask for the version
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the report author
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Storage
	DraftDirectory   string
	OutputDirectory  string
	PublishDirectory string // empty disables publishing

	// Report defaults
	CodePrefix  string
	LogoPath    string
	LogoWidthCM float64
	Autosave    bool

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	LogFile     string
	MaxLogoSize int64 // Maximum logo file size in bytes
	MaxFileSize int64 // Maximum PDF size accepted by the inspector
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:            ModeStdio, // Default to stdio mode for MCP compatibility
		Host:            DefaultHost,
		Port:            DefaultPort,
		DraftDirectory:  filepath.Join(currentDir, DefaultDraftsDir),
		OutputDirectory: filepath.Join(currentDir, DefaultOutputDir),
		CodePrefix:      DefaultCodePrefix,
		LogoWidthCM:     DefaultLogoWidthCM,
		Autosave:        true,
		Version:         DefaultVersion,
		ServerName:      DefaultServerName,
		LogLevel:        DefaultLogLevel,
		MaxLogoSize:     DefaultMaxLogoSize,
		MaxFileSize:     DefaultMaxFileSize,
	}
}

// LoadFromFlags parses the process arguments and returns a configuration
func LoadFromFlags() (*Config, error) {
	return Load(os.Args[0], os.Args[1:])
}

// Load parses args with a fresh flag set. Values come from, in order of
// precedence: flags, REPORT_AUTHOR_* environment variables, the optional
// YAML file named by --config, and defaults.
func Load(program string, args []string) (*Config, error) {
	cfg, _, err := LoadWithFlags(program, args, nil)
	return cfg, err
}

// LoadWithFlags is Load for commands with flags of their own. define adds
// them to the flag set, which is returned parsed.
func LoadWithFlags(program string, args []string, define func(*pflag.FlagSet)) (*Config, *pflag.FlagSet, error) {
	cfg := DefaultConfig()

	// Check for version flag before parsing
	if err := checkVersionFlag(args); err != nil {
		return nil, nil, err
	}

	v := viper.New()
	setupViperEnvironment(v, cfg)

	flags := pflag.NewFlagSet(program, pflag.ContinueOnError)
	defineCommandLineFlags(flags, cfg)
	if define != nil {
		define(flags)
	}
	setupUsageMessage(flags, program, os.Stderr)

	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}
	bindFlagsToViper(v, flags)

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(defaultConfigFormat)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("cannot read config file %s: %w", path, err)
		}
	}

	populateConfigFromViper(v, cfg)
	cfg.expandPaths()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, flags, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("host", cfg.Host)
	v.SetDefault("port", cfg.Port)
	v.SetDefault("drafts", cfg.DraftDirectory)
	v.SetDefault("output", cfg.OutputDirectory)
	v.SetDefault("publish", cfg.PublishDirectory)
	v.SetDefault("prefix", cfg.CodePrefix)
	v.SetDefault("logo", cfg.LogoPath)
	v.SetDefault("logowidth", cfg.LogoWidthCM)
	v.SetDefault("autosave", cfg.Autosave)
	v.SetDefault("loglevel", cfg.LogLevel)
	v.SetDefault("logfile", cfg.LogFile)
	v.SetDefault("maxlogosize", cfg.MaxLogoSize)
	v.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.String("config", "", "Optional YAML configuration file")
	flags.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP/SSE server")
	flags.String("host", cfg.Host, "Server host address (server mode only)")
	flags.Int("port", cfg.Port, "Server port (server mode only)")
	flags.String("drafts", cfg.DraftDirectory, "Directory holding report drafts and the code counter")
	flags.String("output", cfg.OutputDirectory, "Directory receiving exported files")
	flags.String("publish", cfg.PublishDirectory, "Directory sink for published artifacts (empty disables publishing)")
	flags.String("prefix", cfg.CodePrefix, "Prefix of generated report codes")
	flags.String("logo", cfg.LogoPath, "Default header logo image")
	flags.Float64("logowidth", cfg.LogoWidthCM, "Logo width in centimetres (1-12)")
	flags.Bool("autosave", cfg.Autosave, "Save a draft before every export")
	flags.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.String("logfile", cfg.LogFile, "Also append logs to this file")
	flags.Int64("maxlogosize", cfg.MaxLogoSize, "Maximum logo file size in bytes")
	flags.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes for inspection")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper(v *viper.Viper, flags *pflag.FlagSet) {
	for _, name := range []string{
		"mode", "host", "port", "drafts", "output", "publish", "prefix", "logo",
		"logowidth", "autosave", "loglevel", "logfile", "maxlogosize", "maxfilesize",
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage(flags *pflag.FlagSet, program string, w io.Writer) {
	flags.SetOutput(w)
	flags.Usage = func() {
		fmt.Fprintf(w, "Usage of %s:\n", program)
		fmt.Fprintf(w, "\nMCP Report Author - A Model Context Protocol server for authoring technical reports\n\n")
		fmt.Fprintf(w, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(w, "\nExamples:\n")
		fmt.Fprintf(w, "  %s                                          "+
			"# stdio mode, ./drafts and ./out (default)\n", program)
		fmt.Fprintf(w, "  %s --drafts=/srv/reports --prefix=ACME      "+
			"# custom drafts directory and code prefix\n", program)
		fmt.Fprintf(w, "  %s --mode=server --port=8081                # SSE server mode\n", program)
		fmt.Fprintf(w, "  %s --config=author.yaml                     # settings from a YAML file\n", program)
		fmt.Fprintf(w, "\nEnvironment Variables:\n")
		fmt.Fprintf(w, "  %s_MODE, %s_HOST, %s_PORT, %s_DRAFTS, %s_OUTPUT, %s_PUBLISH,\n",
			EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
		fmt.Fprintf(w, "  %s_PREFIX, %s_LOGO, %s_LOGOWIDTH, %s_AUTOSAVE, %s_LOGLEVEL, %s_LOGFILE\n",
			EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag(args []string) error {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return ErrVersionRequested
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.Mode = v.GetString("mode")
	cfg.Host = v.GetString("host")
	cfg.Port = v.GetInt("port")
	cfg.DraftDirectory = v.GetString("drafts")
	cfg.OutputDirectory = v.GetString("output")
	cfg.PublishDirectory = v.GetString("publish")
	cfg.CodePrefix = v.GetString("prefix")
	cfg.LogoPath = v.GetString("logo")
	cfg.LogoWidthCM = v.GetFloat64("logowidth")
	cfg.Autosave = v.GetBool("autosave")
	cfg.LogLevel = strings.ToLower(v.GetString("loglevel"))
	cfg.LogFile = v.GetString("logfile")
	cfg.MaxLogoSize = v.GetInt64("maxlogosize")
	cfg.MaxFileSize = v.GetInt64("maxfilesize")
}

func (c *Config) expandPaths() {
	for _, p := range []*string{&c.DraftDirectory, &c.OutputDirectory, &c.PublishDirectory, &c.LogoPath} {
		if *p == "" {
			continue
		}
		if expanded, err := filepath.Abs(*p); err == nil {
			*p = expanded
		}
	}
}

// Validate checks if the configuration is valid. Missing directories are
// created.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Port only matters in server mode
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.DraftDirectory == "" {
		return errors.New("drafts directory cannot be empty")
	}
	if c.OutputDirectory == "" {
		return errors.New("output directory cannot be empty")
	}

	for _, dir := range []string{c.DraftDirectory, c.OutputDirectory, c.PublishDirectory} {
		if err := ensureDirectory(dir); err != nil {
			return err
		}
	}

	if c.LogoPath != "" {
		info, err := os.Stat(c.LogoPath)
		if err != nil {
			return fmt.Errorf("cannot access logo %s: %w", c.LogoPath, err)
		}
		if info.Size() > c.MaxLogoSize {
			return fmt.Errorf("logo %s is larger than %d bytes", c.LogoPath, c.MaxLogoSize)
		}
	}

	if c.LogoWidthCM < MinLogoWidthCM || c.LogoWidthCM > MaxLogoWidthCM {
		return fmt.Errorf("logo width must be between %.0f and %.0f cm", MinLogoWidthCM, MaxLogoWidthCM)
	}

	if c.MaxLogoSize <= 0 {
		return errors.New("maximum logo size must be positive")
	}
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

func ensureDirectory(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// ReadLogo returns the configured default logo, or nil when none is set
func (c *Config) ReadLogo() ([]byte, error) {
	if c.LogoPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.LogoPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read logo %s: %w", c.LogoPath, err)
	}
	if int64(len(data)) > c.MaxLogoSize {
		return nil, fmt.Errorf("logo %s is larger than %d bytes", c.LogoPath, c.MaxLogoSize)
	}
	return data, nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// PublishEnabled reports whether a publish directory is configured
func (c *Config) PublishEnabled() bool {
	return c.PublishDirectory != ""
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, Drafts: %s, Output: %s, Publish: %s, "+
		"Prefix: %s, LogoWidth: %.1f, Autosave: %t, LogLevel: %s}",
		c.Mode, c.Host, c.Port, c.DraftDirectory, c.OutputDirectory, c.PublishDirectory,
		c.CodePrefix, c.LogoWidthCM, c.Autosave, c.LogLevel)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
