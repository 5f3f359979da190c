package config

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	logging "github.com/ipfs/go-log"
	"github.com/spf13/viper"
	"github.com/wcgcyx/texec/vm"
)

// Logger
var log = logging.Logger("config")

const (
	defaultConfigPath = ".texec"
)

type Config struct {
	// Global
	GlobalLoggingLevel string        `mapstructure:"LOGGING"`    // Log Level: FATAL, PANIC, ERROR, WARN, INFO, DEBUG.
	Path               string        `mapstructure:"DATA_DIR"`   // Main datastore path.
	DSTimeout          time.Duration `mapstructure:"DS_TIMEOUT"` // Datastore timeout.

	// Statestore
	StateStoreGCPeriod time.Duration `mapstructure:"STATESTORE_GC_PERIOD"` // Statestore GC period.
	CodeCacheSize      int           `mapstructure:"CODE_CACHE_SIZE"`      // Number of contract codes kept in memory.

	// Engine
	ChainID        uint64 `mapstructure:"CHAIN_ID"`        // Chain ID.
	HomesteadBlock int64  `mapstructure:"HOMESTEAD_BLOCK"` // Homestead fork block, negative to stay on Frontier.
	MaxCallDepth   uint64 `mapstructure:"MAX_CALL_DEPTH"`  // Max call depth, zero for the schedule default.

	// Execution
	VMType            string `mapstructure:"VM_TYPE"`             // VM type.
	JumpdestCacheSize int    `mapstructure:"JUMPDEST_CACHE_SIZE"` // Number of code analyses kept in memory.
	Tracing           bool   `mapstructure:"TRACING"`             // Record traces of transactions.
	CheckNonce        bool   `mapstructure:"CHECK_NONCE"`         // Reject transactions with unexpected nonce.
}

// Default configs
var DefaultConfig Config = Config{
	Path:               "$HOME/.texec",
	GlobalLoggingLevel: "INFO",
	DSTimeout:          5 * time.Second,
	StateStoreGCPeriod: 30 * time.Minute,
	CodeCacheSize:      1024,
	ChainID:            1,
	HomesteadBlock:     1150000,
	MaxCallDepth:       0,
	VMType:             string(vm.VMTypeInterpreter),
	JumpdestCacheSize:  vm.DefaultJumpdestCacheSize,
	Tracing:            false,
	CheckNonce:         true,
}

// NewConfig creates a new configuration.
//
// @output - configuration, error.
func NewConfig(configFile string) (Config, error) {
	// Try to load config file from $HOME/.texec
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/" + defaultConfigPath)
	if configFile != "" {
		viper.SetConfigFile(configFile)
	}
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	conf := Config{}

	// Parse global config
	conf.GlobalLoggingLevel = viper.GetString("LOGGING")
	if conf.GlobalLoggingLevel == "" {
		conf.GlobalLoggingLevel = DefaultConfig.GlobalLoggingLevel
	}
	logLevel, err := logging.LevelFromString(conf.GlobalLoggingLevel)
	if err != nil {
		return Config{}, err
	}
	logging.SetAllLoggers(logLevel)
	conf.Path = viper.GetString("DATA_DIR")
	if conf.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		conf.Path = filepath.Join(home, defaultConfigPath)
		log.Infof("DATA_DIR not defined, use default: %v", conf.Path)
	}
	conf.DSTimeout = viper.GetDuration("DS_TIMEOUT")
	if conf.DSTimeout <= 0 {
		conf.DSTimeout = DefaultConfig.DSTimeout
		log.Infof("Invalid DS_TIMEOUT found, use default: %v", conf.DSTimeout)
	}

	// Parse statestore config
	conf.StateStoreGCPeriod = viper.GetDuration("STATESTORE_GC_PERIOD")
	if conf.StateStoreGCPeriod < 10*time.Minute {
		conf.StateStoreGCPeriod = DefaultConfig.StateStoreGCPeriod
		log.Infof("STATESTORE_GC_PERIOD is smaller than min 10m, use default %v", conf.StateStoreGCPeriod)
	}
	conf.CodeCacheSize = viper.GetInt("CODE_CACHE_SIZE")
	if conf.CodeCacheSize <= 0 {
		conf.CodeCacheSize = DefaultConfig.CodeCacheSize
		log.Infof("CODE_CACHE_SIZE not set, use default %v", conf.CodeCacheSize)
	}

	// Parse engine config
	conf.ChainID = uint64(viper.GetInt64("CHAIN_ID"))
	if conf.ChainID == 0 {
		conf.ChainID = DefaultConfig.ChainID
		log.Infof("CHAIN_ID not set, use default %v", conf.ChainID)
	}
	if viper.IsSet("HOMESTEAD_BLOCK") {
		conf.HomesteadBlock = viper.GetInt64("HOMESTEAD_BLOCK")
	} else {
		conf.HomesteadBlock = DefaultConfig.HomesteadBlock
		log.Infof("HOMESTEAD_BLOCK not set, use default %v", conf.HomesteadBlock)
	}
	conf.MaxCallDepth = uint64(viper.GetInt64("MAX_CALL_DEPTH"))

	// Parse execution config
	conf.VMType = viper.GetString("VM_TYPE")
	if conf.VMType == "" {
		conf.VMType = DefaultConfig.VMType
		log.Infof("VM_TYPE not set, use default %v", conf.VMType)
	}
	conf.JumpdestCacheSize = viper.GetInt("JUMPDEST_CACHE_SIZE")
	if conf.JumpdestCacheSize <= 0 {
		conf.JumpdestCacheSize = DefaultConfig.JumpdestCacheSize
		log.Infof("JUMPDEST_CACHE_SIZE not set, use default %v", conf.JumpdestCacheSize)
	}
	conf.Tracing = DefaultConfig.Tracing
	if viper.IsSet("TRACING") {
		conf.Tracing = viper.GetBool("TRACING")
	}
	conf.CheckNonce = DefaultConfig.CheckNonce
	if viper.IsSet("CHECK_NONCE") {
		conf.CheckNonce = viper.GetBool("CHECK_NONCE")
	}

	return conf, nil
}

// HomesteadBlockNumber returns the homestead fork block, nil if never.
func (c Config) HomesteadBlockNumber() *uint64 {
	if c.HomesteadBlock < 0 {
		return nil
	}
	num := uint64(c.HomesteadBlock)
	return &num
}

// MaxCallDepthOverride returns the max call depth override, nil if not set.
func (c Config) MaxCallDepthOverride() *uint64 {
	if c.MaxCallDepth == 0 {
		return nil
	}
	depth := c.MaxCallDepth
	return &depth
}
