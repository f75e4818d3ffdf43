// Package workspace holds the agent's startup configuration: the primary
// project and any dependency projects whose sources can be analyzed
// alongside it. Configuration is resolved once at startup and treated as
// read-only afterward.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ErrUnknownProject reports a project reference that matches neither a
// configured project name nor an existing directory.
var ErrUnknownProject = errors.New("unknown project")

// Project is a named set of source roots.
type Project struct {
	Name  string   `mapstructure:"name"`
	Paths []string `mapstructure:"paths"`
}

// Config is the agent's startup configuration.
type Config struct {
	Listen       string    `mapstructure:"listen"`
	Primary      Project   `mapstructure:"primary"`
	Dependencies []Project `mapstructure:"dependencies"`
}

// LoadConfig reads configuration from path, or from an optional
// rustscope.yaml in the working directory when path is empty. A missing
// default file is not an error; the defaults analyze the working
// directory. Settings may be overridden via RUSTSCOPE_* environment
// variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen", "127.0.0.1:8080")
	v.SetDefault("primary.name", "default")
	v.SetDefault("primary.paths", []string{"."})

	v.SetEnvPrefix("RUSTSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("rustscope")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Resolve expands a directory spec into source roots. An empty spec means
// the primary project. Otherwise each list element must be a configured
// project name or an existing directory.
func (c *Config) Resolve(spec string) ([]string, error) {
	if spec == "" {
		return c.Primary.Paths, nil
	}

	var roots []string
	for _, part := range SplitList(spec) {
		if p, ok := c.project(part); ok {
			roots = append(roots, p.Paths...)
			continue
		}
		if info, err := os.Stat(part); err == nil && info.IsDir() {
			roots = append(roots, part)
			continue
		}
		return nil, fmt.Errorf("%w: %q (configured: %s)",
			ErrUnknownProject, part, strings.Join(c.Known(), ", "))
	}
	return roots, nil
}

// Known lists the configured project names, primary first.
func (c *Config) Known() []string {
	names := []string{c.Primary.Name}
	for _, d := range c.Dependencies {
		names = append(names, d.Name)
	}
	return names
}

func (c *Config) project(name string) (*Project, bool) {
	if name == c.Primary.Name {
		return &c.Primary, true
	}
	for i := range c.Dependencies {
		if c.Dependencies[i].Name == name {
			return &c.Dependencies[i], true
		}
	}
	return nil, false
}

// SplitList splits a colon- or comma-separated list, dropping empty
// elements and surrounding whitespace.
func SplitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == ','
	})
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
