package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging     LoggingConfig   `yaml:"logging"`
	Unitu       UnituConfig     `yaml:"unitu"`
	Block       BlockDefaults   `yaml:"block"`
	Instances   []BlockInstance `yaml:"instances"`
	MongoURI    string          `yaml:"mongo_uri"`
	MongoDBName string          `yaml:"mongo_db_name"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// UnituConfig holds the upstream notifications API settings.
// The API key is intentionally not part of the YAML file; it is read
// from the UNITU_API_KEY environment variable (.env in development).
type UnituConfig struct {
	BaseURL        string      `yaml:"base_url"`
	TimeoutSeconds int         `yaml:"timeout_seconds"`
	Quota          QuotaConfig `yaml:"quota"`
}

// QuotaConfig limits calls to the upstream API.
// Values of 0 or below mean no limit in that direction.
type QuotaConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	RequestsPerDay    int `yaml:"requests_per_day"`
}

// BlockDefaults are the formatting defaults applied to every block
// instance unless the instance overrides them.
type BlockDefaults struct {
	Title            string `yaml:"title"`
	MaxWords         int    `yaml:"max_words"`
	DepartmentsLimit int    `yaml:"departments_limit"`
}

// BlockInstance is a single configured block placement.
type BlockInstance struct {
	ID               string `yaml:"id"`
	Title            string `yaml:"title"`
	AnnouncementsRSS string `yaml:"announcements_rss"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	applyDefaults(&c)
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func applyDefaults(c *AppConfig) {
	if c.Block.Title == "" {
		c.Block.Title = "Unitu Notifications"
	}
	if c.Block.MaxWords <= 0 {
		c.Block.MaxWords = 50
	}
	if c.Block.DepartmentsLimit <= 0 {
		c.Block.DepartmentsLimit = 80
	}
	if c.Unitu.TimeoutSeconds <= 0 {
		c.Unitu.TimeoutSeconds = 10
	}
}

// Instance returns the configured block instance with the given id.
func (c AppConfig) Instance(id string) (BlockInstance, bool) {
	for _, inst := range c.Instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return BlockInstance{}, false
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
