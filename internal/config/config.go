package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath  string   `mapstructure:"project_path" validate:"required"`
	TestDir      string   `mapstructure:"test_dir" validate:"required"`
	SpecSuffix   string   `mapstructure:"spec_suffix" validate:"required"`
	EnvDir       string   `mapstructure:"env_dir" validate:"required"`
	Environments []string `mapstructure:"environments" validate:"min=1,dive,required"`

	Runner   RunnerConfig   `mapstructure:"runner"`
	Report   ReportConfig   `mapstructure:"report"`
	Mail     MailConfig     `mapstructure:"mail"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	TestData TestDataConfig `mapstructure:"test_data"`

	// Command flags
	Flags Flags `mapstructure:"-"`
}

// RunnerConfig describes how the external test runner is launched
type RunnerConfig struct {
	Command  []string `mapstructure:"command" validate:"min=1,dive,required"`
	GrepFlag string   `mapstructure:"grep_flag" validate:"required"`
}

// ReportConfig locates the report artifacts
type ReportConfig struct {
	Path             string `mapstructure:"path" validate:"required"`
	AttachmentName   string `mapstructure:"attachment_name" validate:"required"`
	Subject          string `mapstructure:"subject"`
	AllureResultsDir string `mapstructure:"allure_results_dir"`
	AllureOutputDir  string `mapstructure:"allure_output_dir"`
}

// MailConfig holds the SMTP settings used to deliver the report
type MailConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port" validate:"gte=0,lte=65535"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from" validate:"omitempty,email"`
	To       []string `mapstructure:"to" validate:"dive,email"`
	Cc       []string `mapstructure:"cc" validate:"dive,email"`
	// TLS is "starttls" (default), "smtps" for implicit TLS or "none"
	TLS string `mapstructure:"tls" validate:"omitempty,oneof=starttls smtps none"`
}

// StorageConfig selects the run history backend
type StorageConfig struct {
	Dir   string `mapstructure:"dir"`
	File  string `mapstructure:"file"`
	Limit int    `mapstructure:"limit" validate:"gte=0"`
	// DSN switches history to MySQL when set
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table" validate:"required"`
}

// BrowserConfig configures sessions opened by the browser toolkit
type BrowserConfig struct {
	Headless bool    `mapstructure:"headless"`
	SlowMo   float64 `mapstructure:"slow_mo"`
	Timeout  float64 `mapstructure:"timeout" validate:"gte=0"`
	VideoDir string  `mapstructure:"video_dir"`
}

// TestDataConfig locates the Excel test data
type TestDataConfig struct {
	Path string `mapstructure:"path"`
}

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	TestDir     string
	NameFilter  string
	TestCases   bool
	Plain       bool
	Env         string
	AllureEnv   string
	Files       string
	Tag         string
	Cron        string
	Sheet       string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath: DefaultProjectPath,
		TestDir:     DefaultTestDir,
		SpecSuffix:  DefaultSpecSuffix,
		EnvDir:      DefaultEnvDir,
		Runner: RunnerConfig{
			GrepFlag: DefaultGrepFlag,
		},
		Report: ReportConfig{
			Path:             DefaultReportPath,
			AttachmentName:   DefaultReportAttachment,
			Subject:          DefaultReportSubject,
			AllureResultsDir: DefaultAllureResultsDir,
			AllureOutputDir:  DefaultAllureOutputDir,
		},
		Mail: MailConfig{
			Port: DefaultSMTPPort,
			TLS:  "starttls",
		},
		Storage: StorageConfig{
			Dir:   DefaultStorageDir,
			File:  DefaultStorageFile,
			Limit: DefaultHistoryLimit,
			Table: DefaultStorageTable,
		},
		Browser: BrowserConfig{
			Headless: true,
			Timeout:  DefaultBrowserTimeout,
		},
		TestData: TestDataConfig{Path: DefaultTestDataPath},
	}
	// Copy default slices so callers cannot mutate the package defaults
	cfg.Environments = append([]string(nil), DefaultEnvironments...)
	cfg.Runner.Command = append([]string(nil), DefaultRunnerCommand...)
	return cfg
}

// Load creates a config from defaults, an optional pws.yaml in projectPath and PWS_* environment variables
func Load(projectPath string) (*Config, error) {
	defaults := New()
	if projectPath != "" {
		defaults.ProjectPath = projectPath
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(DefaultConfigName)
	v.AddConfigPath(defaults.ProjectPath)
	setDefaults(v, defaults)

	if err := v.ReadInConfig(); err != nil {
		// It's OK if pws.yaml doesn't exist
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("PWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("project_path", c.ProjectPath)
	v.SetDefault("test_dir", c.TestDir)
	v.SetDefault("spec_suffix", c.SpecSuffix)
	v.SetDefault("env_dir", c.EnvDir)
	v.SetDefault("environments", c.Environments)
	v.SetDefault("runner.command", c.Runner.Command)
	v.SetDefault("runner.grep_flag", c.Runner.GrepFlag)
	v.SetDefault("report.path", c.Report.Path)
	v.SetDefault("report.attachment_name", c.Report.AttachmentName)
	v.SetDefault("report.subject", c.Report.Subject)
	v.SetDefault("report.allure_results_dir", c.Report.AllureResultsDir)
	v.SetDefault("report.allure_output_dir", c.Report.AllureOutputDir)
	v.SetDefault("mail.enabled", c.Mail.Enabled)
	v.SetDefault("mail.host", c.Mail.Host)
	v.SetDefault("mail.port", c.Mail.Port)
	v.SetDefault("mail.username", c.Mail.Username)
	v.SetDefault("mail.password", c.Mail.Password)
	v.SetDefault("mail.from", c.Mail.From)
	v.SetDefault("mail.to", c.Mail.To)
	v.SetDefault("mail.cc", c.Mail.Cc)
	v.SetDefault("mail.tls", c.Mail.TLS)
	v.SetDefault("storage.dir", c.Storage.Dir)
	v.SetDefault("storage.file", c.Storage.File)
	v.SetDefault("storage.limit", c.Storage.Limit)
	v.SetDefault("storage.dsn", c.Storage.DSN)
	v.SetDefault("storage.table", c.Storage.Table)
	v.SetDefault("browser.headless", c.Browser.Headless)
	v.SetDefault("browser.slow_mo", c.Browser.SlowMo)
	v.SetDefault("browser.timeout", c.Browser.Timeout)
	v.SetDefault("browser.video_dir", c.Browser.VideoDir)
	v.SetDefault("test_data.path", c.TestData.Path)
}

// Validate checks the struct tags of the whole configuration
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Mail.Enabled && (c.Mail.Host == "" || c.Mail.From == "" || len(c.Mail.To) == 0) {
		return errors.New("invalid configuration: mail.enabled requires mail.host, mail.from and mail.to")
	}
	return nil
}

// resolve makes p relative to the project unless it is absolute
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetTestPath returns the spec directory, using the flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestDir != "" {
		return c.resolve(c.Flags.TestDir)
	}
	return c.resolve(c.TestDir)
}

// GetEnvPath returns the directory holding the environment profiles
func (c *Config) GetEnvPath() string {
	return c.resolve(c.EnvDir)
}

// GetReportPath returns the HTML report path
func (c *Config) GetReportPath() string {
	return c.resolve(c.Report.Path)
}

// GetAllureResultsPath returns the Allure raw results directory
func (c *Config) GetAllureResultsPath() string {
	return c.resolve(c.Report.AllureResultsDir)
}

// GetAllureOutputPath returns the generated Allure report directory
func (c *Config) GetAllureOutputPath() string {
	return c.resolve(c.Report.AllureOutputDir)
}

// GetHistoryPath returns the full path to the run history file.
// Resolves to an absolute path so run and history always read/write the same file regardless of cwd.
func (c *Config) GetHistoryPath() string {
	p := filepath.Join(c.ProjectPath, c.Storage.Dir, c.Storage.File)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetTestDataPath returns the Excel test data workbook path
func (c *Config) GetTestDataPath() string {
	return c.resolve(c.TestData.Path)
}
