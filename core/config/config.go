package config

import (
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/saveblush/annotate-api/core/utils/logger"
)

var (
	CF = &Configs{}
)

var (
	filePath       = "./configs"
	fileExtension  = "yml"
	fileNameConfig = "config"
)

// Environment environment
type Environment string

const (
	Develop    Environment = "develop"
	Production Environment = "prod"
)

// Production check is production
func (e Environment) Production() bool {
	return e == Production
}

type DatabaseConfig struct {
	Host         string        `mapstructure:"HOST"`
	Port         int           `mapstructure:"PORT"`
	Username     string        `mapstructure:"USERNAME"`
	Password     string        `mapstructure:"PASSWORD"`
	DatabaseName string        `mapstructure:"DATABASE_NAME"`
	Timeout      string        `mapstructure:"TIMEOUT"`
	MaxIdleConns int           `mapstructure:"MAX_IDLE_CONNS"`
	MaxOpenConns int           `mapstructure:"MAX_OPEN_CONNS"`
	MaxLifetime  time.Duration `mapstructure:"MAX_LIFE_TIME"`
}

type SearchConfig struct {
	Addresses []string `mapstructure:"ADDRESSES"`
	Username  string   `mapstructure:"USERNAME"`
	Password  string   `mapstructure:"PASSWORD"`
	Index     string   `mapstructure:"INDEX"`
}

type Configs struct {
	Info struct {
		Name        string `mapstructure:"NAME"`
		Description string `mapstructure:"DESCRIPTION"`
		Contact     string `mapstructure:"CONTACT"`
		Software    string `mapstructure:"SOFTWARE"`
		Version     string `mapstructure:"VERSION"`
	} `mapstructure:"INFO"`

	App struct {
		Port        int         `mapstructure:"PORT"`
		Environment Environment `mapstructure:"ENVIRONMENT"`
	} `mapstructure:"APP"`

	Database struct {
		AnnotationSQL DatabaseConfig `mapstructure:"ANNOTATION_SQL"`
	} `mapstructure:"DATABASE"`

	Search SearchConfig `mapstructure:"SEARCH"`
}

// InitConfig init config
func InitConfig() error {
	v := viper.New()
	v.AddConfigPath(filePath)
	v.SetConfigName(fileNameConfig)
	v.SetConfigType(fileExtension)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		logger.Log.Errorf("read config file error: %s", err)
		return err
	}

	if err := v.Unmarshal(CF); err != nil {
		logger.Log.Errorf("binding config error: %s", err)
		return err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		logger.Log.Infof("config file changed: %s", e.Name)
		if err := v.Unmarshal(CF); err != nil {
			logger.Log.Errorf("binding config error: %s", err)
		}
	})
	v.WatchConfig()

	return nil
}
