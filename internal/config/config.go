package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Pg            Pg            `yaml:"pg"`
	Redis         Redis         `yaml:"redis"`
	JwtTTL        time.Duration `yaml:"jwt_ttl"`
	IndexCacheTTL time.Duration `yaml:"index_cache_ttl"`
	MediaPath     string        `yaml:"media_path"`
	TemplatePath  string        `yaml:"template_path"`
	StaticPath    string        `yaml:"static_path"`
	LogLevel      string        `yaml:"log_level"`
	LogJSON       bool          `yaml:"log_json"`
	SecureCookies bool          `yaml:"secure_cookies"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Dbname   string `yaml:"dbname"`
	InitPath string `yaml:"initpath"`
}

type Redis struct {
	Addr string `yaml:"addr"` // empty disables redis, page cache falls back to memory
}

type Private struct {
	JwtKey     string `yaml:"jwt_key"`
	PgPassword string `yaml:"pg_password"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}
