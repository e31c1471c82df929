package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultListenURL   = "http://127.0.0.1:8080"
	DefaultDBFileName  = ".inkwell.db"
	DefaultLogLevel    = "info"
	DefaultPostsDir    = "content/posts"
	DefaultProjectsDir = "content/projects"

	DefaultSiteTitle    = "Inkwell Studio"
	DefaultSiteLanguage = "en"
	DefaultTheme        = "light"

	DefaultExcerptLength     = 160
	DefaultRelatedLimit      = 3
	DefaultContactPerMinute  = 5
	DefaultContactBurst      = 3
	DefaultContactMaxMessage = 8192

	GlobalFileName  = ".inkwell.toml"
	ProjectFileName = "inkwell.toml"

	configDirEnvKey = "INKWELL_CONFIG_DIR"
)

// SiteConfig describes the published site.
type SiteConfig struct {
	Title        string `toml:"title"`
	Description  string `toml:"description"`
	BaseURL      string `toml:"base_url"`
	Author       string `toml:"author"`
	Language     string `toml:"language"`
	DefaultTheme string `toml:"default_theme"`
}

// ContentConfig locates the markdown trees and tunes how they load.
type ContentConfig struct {
	PostsDir      string `toml:"posts_dir"`
	ProjectsDir   string `toml:"projects_dir"`
	GitHistory    bool   `toml:"git_history"`
	IncludeDrafts bool   `toml:"include_drafts"`
	ExcerptLength int    `toml:"excerpt_length"`
	RelatedLimit  int    `toml:"related_limit"`
}

// ContactConfig limits the contact form.
type ContactConfig struct {
	RatePerMinute   int `toml:"rate_per_minute"`
	Burst           int `toml:"burst"`
	MaxMessageBytes int `toml:"max_message_bytes"`
}

// AdminConfig holds the inbox credentials. An empty password hash disables
// the inbox.
type AdminConfig struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"`
}

// RenderConfig tunes markdown rendering.
type RenderConfig struct {
	AllowHTML bool `toml:"allow_html"`
}

// Config defines runtime configuration for inkwell.
type Config struct {
	ListenURL string        `toml:"listen_url"`
	DBPath    string        `toml:"db_path"`
	LogLevel  string        `toml:"log_level"`
	Site      SiteConfig    `toml:"site"`
	Content   ContentConfig `toml:"content"`
	Contact   ContactConfig `toml:"contact"`
	Admin     AdminConfig   `toml:"admin"`
	Render    RenderConfig  `toml:"render"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		ListenURL: DefaultListenURL,
		LogLevel:  DefaultLogLevel,
		Site: SiteConfig{
			Title:        DefaultSiteTitle,
			Language:     DefaultSiteLanguage,
			DefaultTheme: DefaultTheme,
		},
		Content: ContentConfig{
			PostsDir:      DefaultPostsDir,
			ProjectsDir:   DefaultProjectsDir,
			ExcerptLength: DefaultExcerptLength,
			RelatedLimit:  DefaultRelatedLimit,
		},
		Contact: ContactConfig{
			RatePerMinute:   DefaultContactPerMinute,
			Burst:           DefaultContactBurst,
			MaxMessageBytes: DefaultContactMaxMessage,
		},
	}
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, ProjectFileName), true
}

var allowedKeys = []string{
	"listen_url",
	"db_path",
	"log_level",
	"site.title",
	"site.description",
	"site.base_url",
	"site.author",
	"site.language",
	"site.default_theme",
	"content.posts_dir",
	"content.projects_dir",
	"content.git_history",
	"content.include_drafts",
	"content.excerpt_length",
	"content.related_limit",
	"contact.rate_per_minute",
	"contact.burst",
	"contact.max_message_bytes",
	"admin.username",
	"admin.password_hash",
	"render.allow_html",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "listen_url":
		return c.ListenURL, nil
	case "db_path":
		return c.DBPath, nil
	case "log_level":
		return c.LogLevel, nil
	case "site.title":
		return c.Site.Title, nil
	case "site.description":
		return c.Site.Description, nil
	case "site.base_url":
		return c.Site.BaseURL, nil
	case "site.author":
		return c.Site.Author, nil
	case "site.language":
		return c.Site.Language, nil
	case "site.default_theme":
		return c.Site.DefaultTheme, nil
	case "content.posts_dir":
		return c.Content.PostsDir, nil
	case "content.projects_dir":
		return c.Content.ProjectsDir, nil
	case "content.git_history":
		return strconv.FormatBool(c.Content.GitHistory), nil
	case "content.include_drafts":
		return strconv.FormatBool(c.Content.IncludeDrafts), nil
	case "content.excerpt_length":
		return strconv.Itoa(c.Content.ExcerptLength), nil
	case "content.related_limit":
		return strconv.Itoa(c.Content.RelatedLimit), nil
	case "contact.rate_per_minute":
		return strconv.Itoa(c.Contact.RatePerMinute), nil
	case "contact.burst":
		return strconv.Itoa(c.Contact.Burst), nil
	case "contact.max_message_bytes":
		return strconv.Itoa(c.Contact.MaxMessageBytes), nil
	case "admin.username":
		return c.Admin.Username, nil
	case "admin.password_hash":
		return c.Admin.PasswordHash, nil
	case "render.allow_html":
		return strconv.FormatBool(c.Render.AllowHTML), nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalFileName), nil
}

// ProjectPath returns the path to the site config file in the working
// directory.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, ProjectFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads the global then the site config file and applies env
// overrides. INKWELL_CONFIG_DIR replaces both files with one.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, GlobalFileName), &cfg); err != nil {
				return nil, err
			}
		}
		if cwd, err := os.Getwd(); err == nil {
			if err := loadFile(filepath.Join(cwd, ProjectFileName), &cfg); err != nil {
				return nil, err
			}
		}
	}

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}

	if listenURL := os.Getenv("INKWELL_LISTEN_URL"); listenURL != "" {
		cfg.ListenURL = listenURL
	}
	if dbPath := os.Getenv("INKWELL_DB"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if baseURL := os.Getenv("INKWELL_BASE_URL"); baseURL != "" {
		cfg.Site.BaseURL = baseURL
	}
	if dir := os.Getenv("INKWELL_POSTS_DIR"); dir != "" {
		cfg.Content.PostsDir = dir
	}
	if dir := os.Getenv("INKWELL_PROJECTS_DIR"); dir != "" {
		cfg.Content.ProjectsDir = dir
	}

	cfg.normalize()

	return &cfg, nil
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "content.excerpt_length", "content.related_limit",
		"contact.rate_per_minute", "contact.burst", "contact.max_message_bytes":
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return int64(parsed), nil
	case "content.git_history", "content.include_drafts", "render.allow_html":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", key)
		}
		return parsed, nil
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "warning", "error":
			return strings.ToLower(value), nil
		}
		return nil, fmt.Errorf("log_level must be one of debug, info, warn, error")
	case "site.default_theme":
		switch strings.ToLower(value) {
		case "light", "dark":
			return strings.ToLower(value), nil
		}
		return nil, fmt.Errorf("site.default_theme must be light or dark")
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}

func (c *Config) normalize() {
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	if strings.TrimSpace(c.Site.Title) == "" {
		c.Site.Title = DefaultSiteTitle
	}
	if strings.TrimSpace(c.Site.Language) == "" {
		c.Site.Language = DefaultSiteLanguage
	}
	switch strings.ToLower(strings.TrimSpace(c.Site.DefaultTheme)) {
	case "light", "dark":
		c.Site.DefaultTheme = strings.ToLower(strings.TrimSpace(c.Site.DefaultTheme))
	default:
		c.Site.DefaultTheme = DefaultTheme
	}
	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
	if c.Content.PostsDir == "" {
		c.Content.PostsDir = DefaultPostsDir
	}
	if c.Content.ProjectsDir == "" {
		c.Content.ProjectsDir = DefaultProjectsDir
	}
	if c.Content.ExcerptLength <= 0 {
		c.Content.ExcerptLength = DefaultExcerptLength
	}
	if c.Content.RelatedLimit <= 0 {
		c.Content.RelatedLimit = DefaultRelatedLimit
	}
	if c.Contact.RatePerMinute <= 0 {
		c.Contact.RatePerMinute = DefaultContactPerMinute
	}
	if c.Contact.Burst <= 0 {
		c.Contact.Burst = DefaultContactBurst
	}
	if c.Contact.MaxMessageBytes <= 0 {
		c.Contact.MaxMessageBytes = DefaultContactMaxMessage
	}
}
