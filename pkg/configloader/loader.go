// Package configloader builds logship configurations from environment
// variables, YAML documents, or files using Viper. It exists so hosts can
// configure the shim without hand-writing struct literals; the root package
// never depends on it.
package configloader

import (
	"bytes"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/viper"

	"github.com/hyp3rd/logship"
)

const defaultEnvPrefix = "LOGSHIP"

// FromEnv loads configuration sourced from environment variables using the
// provided prefix. Environment keys are normalized by uppercasing and
// replacing dots with underscores, so `base_path` binds LOGSHIP_BASE_PATH.
func FromEnv(prefix string) (*logship.Config, error) {
	viperInstance := viper.New()

	err := bindEnvironment(viperInstance, normalizePrefix(prefix))
	if err != nil {
		return nil, err
	}

	raw, err := loadRawFromViper(viperInstance)
	if err != nil {
		return nil, err
	}

	return applyRaw(raw)
}

// FromYAML loads configuration from a YAML document provided as bytes.
func FromYAML(data []byte) (*logship.Config, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to read YAML configuration")
	}

	raw, err := loadRawFromViper(viperInstance)
	if err != nil {
		return nil, err
	}

	return applyRaw(raw)
}

// FromFile loads configuration from a YAML file and merges environment
// overrides using the default prefix.
func FromFile(path string) (*logship.Config, error) {
	viperInstance := viper.New()

	err := bindEnvironment(viperInstance, defaultEnvPrefix)
	if err != nil {
		return nil, err
	}

	viperInstance.SetConfigFile(path)

	err = viperInstance.ReadInConfig()
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to read configuration file").
			WithMetadata("path", path)
	}

	raw, err := loadRawFromViper(viperInstance)
	if err != nil {
		return nil, err
	}

	return applyRaw(raw)
}

func loadRawFromViper(viperInstance *viper.Viper) (rawConfig, error) {
	var raw rawConfig

	// Materialize bound environment values so Unmarshal sees them; viper only
	// includes explicitly set keys in its settings map.
	for _, key := range allKeys() {
		if !viperInstance.IsSet(key) {
			continue
		}

		viperInstance.Set(key, viperInstance.Get(key))
	}

	err := viperInstance.Unmarshal(&raw)
	if err != nil {
		return rawConfig{}, ewrap.Wrap(err, "failed to decode configuration")
	}

	return raw, nil
}

func bindEnvironment(viperInstance *viper.Viper, prefix string) error {
	replacer := strings.NewReplacer(".", "_")
	viperInstance.SetEnvKeyReplacer(replacer)
	viperInstance.AutomaticEnv()

	if prefix != "" {
		viperInstance.SetEnvPrefix(prefix)
	}

	errorGroup := ewrap.NewErrorGroup()

	for _, key := range allKeys() {
		err := viperInstance.BindEnv(key)
		if err != nil {
			errorGroup.Add(err)
		}
	}

	if errorGroup.HasErrors() {
		return errorGroup
	}

	return nil
}

func normalizePrefix(prefix string) string {
	if prefix == "" {
		return defaultEnvPrefix
	}

	return strings.ToUpper(strings.TrimSuffix(prefix, "_"))
}
