// Package config locates the two sources and the output directory. Values come from, in
// increasing precedence: defaults, an optional yaml file, a .env file and the environment
// (prefix INCOMEREG, e.g. INCOMEREG_EDUCATION_PATH).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/invertedv/incomereg/source"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

const (
	EnvPrefix = "INCOMEREG"
	// EnvFile names the environment variable holding the config file path.
	EnvFile = EnvPrefix + "_CONFIG"
)

type Config struct {
	Education    source.Spec `mapstructure:"education" yaml:"education"`
	Unemployment source.Spec `mapstructure:"unemployment" yaml:"unemployment"`
	DB           source.DB   `mapstructure:"db" yaml:"db"`
	OutputDir    string      `mapstructure:"output_dir" yaml:"output_dir"`
}

// Default is the configuration with nothing set: the two USDA CSV files in the working directory.
func Default() *Config {
	return &Config{
		Education:    source.Spec{Kind: "csv", Path: "education.csv"},
		Unemployment: source.Spec{Kind: "csv", Path: "unemployment.csv"},
		DB:           source.DB{Host: "127.0.0.1"},
		OutputDir:    "figures",
	}
}

// Load builds the configuration. cfgFile may be empty; if given it must be readable.
func Load(cfgFile string) (*Config, error) {
	if e := godotenv.Load(); e != nil {
		klog.V(2).InfoS("no .env file", "err", e)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	for key, val := range map[string]any{
		"education.kind":           def.Education.Kind,
		"education.path":           def.Education.Path,
		"education.sheet":          "",
		"education.skip":           0,
		"education.query":          "",
		"education.lazy_quotes":    false,
		"unemployment.kind":        def.Unemployment.Kind,
		"unemployment.path":        def.Unemployment.Path,
		"unemployment.sheet":       "",
		"unemployment.skip":        0,
		"unemployment.query":       "",
		"unemployment.lazy_quotes": false,
		"db.host":                  def.DB.Host,
		"db.user":                  "",
		"db.password":              "",
		"db.database":              "",
		"output_dir":               def.OutputDir,
	} {
		v.SetDefault(key, val)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if e := v.ReadInConfig(); e != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, e)
		}
	}

	var c Config
	if e := v.Unmarshal(&c); e != nil {
		return nil, fmt.Errorf("unmarshal config: %w", e)
	}

	klog.V(1).InfoS("config loaded", "file", cfgFile, "education", c.Education.Path, "unemployment", c.Unemployment.Path)

	return &c, nil
}

// Save writes c as yaml, refusing to replace an existing file.
func Save(c *Config, fileName string) error {
	if _, e := os.Stat(fileName); e == nil {
		return fmt.Errorf("config %s already exists", fileName)
	} else if !errors.Is(e, os.ErrNotExist) {
		return e
	}

	b, e := yaml.Marshal(c)
	if e != nil {
		return fmt.Errorf("marshal yaml: %w", e)
	}

	return os.WriteFile(fileName, b, 0o644)
}

// Sources opens the education and unemployment sources. closer releases both.
func (c *Config) Sources() (edu, unemp source.Source, closer func() error, err error) {
	var closeEdu, closeUnemp func() error
	if edu, closeEdu, err = source.Open(c.Education, c.DB); err != nil {
		return nil, nil, nil, err
	}

	if unemp, closeUnemp, err = source.Open(c.Unemployment, c.DB); err != nil {
		_ = closeEdu()
		return nil, nil, nil, err
	}

	closer = func() error {
		return errors.Join(closeEdu(), closeUnemp())
	}

	return edu, unemp, closer, nil
}
