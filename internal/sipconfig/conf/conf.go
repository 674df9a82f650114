// Package conf loads the sipconfig configuration file.
package conf

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/pkg/config"
)

const (
	AppName      = "sipconfig"
	EnvPrefix    = "SIPCONFIG"
	EnvConfigDir = "SIPCONFIG_DIR"
)

// LoadConfig reads ~/.sipconfig/sipconfig.yaml (or the file in configPath),
// then applies cmdConf on top. Keys in cmdConf use the config file's dotted
// names.
func LoadConfig(configPath string, cmdConf map[string]any) (*Config, *config.Manager, error) {

	if configPath == "" {
		configPath = os.Getenv(EnvConfigDir)
	}

	cm, err := config.New(AppName, configPath, "", EnvPrefix, false)
	if err != nil {
		log.Error().Err(err).Msg("load config failed")
		return nil, nil, errors.Config("load config failed", err)
	}

	conf := &Config{}
	config.SetDefaults(cm.Viper, Defaults)

	for key, value := range cmdConf {
		if err := cm.SetConfig(key, value); err != nil {
			return nil, nil, errors.Config("set "+key, err)
		}
	}

	if err := cm.Load(conf); err != nil {
		log.Error().Err(err).Msg("load config failed")
		return nil, nil, errors.Config("load config failed", err)
	}
	conf.ConfigDir = cm.Path

	if _, err := conf.GetMinOSVersion(); err != nil {
		return nil, nil, errors.Config("invalid min_os_version", err)
	}

	b, _ := json.Marshal(conf)
	log.Debug().Msgf("config: %s", string(b))

	return conf, cm, nil
}
