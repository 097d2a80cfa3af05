package config

import (
	"github.com/spf13/viper"

	"synbridge/core"
	"synbridge/pkg/utils"
)

// BridgeGenesisFile is the default path LoadBridgeGenesis reads, mirroring
// Load's default.yaml convention for the rest of the node configuration.
const BridgeGenesisFile = "bridge_genesis"

// LoadBridgeGenesis reads the bridge's genesis parameters (witness set,
// signature threshold, local/remote denominations) from a YAML file and
// decodes it into a core.GenesisConfig. It is intentionally independent of
// Load/AppConfig: the bridge module's genesis is versioned and installed
// through InitOrMigrate, not folded into the node-wide Config struct.
func LoadBridgeGenesis(path string) (core.GenesisConfig, error) {
	v := viper.New()
	v.SetConfigName(BridgeGenesisFile)
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath("cmd/config")
	v.AddConfigPath("config")
	if err := v.ReadInConfig(); err != nil {
		return core.GenesisConfig{}, utils.Wrap(err, "load bridge genesis")
	}

	var cfg core.GenesisConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return core.GenesisConfig{}, utils.Wrap(err, "unmarshal bridge genesis")
	}
	return cfg, nil
}
