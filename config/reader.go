package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"reflect"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/mountsim/logging"
)

// Read reads a config from the given file. Environment variables referenced as $VAR or ${VAR}
// are substituted before parsing.
func Read(
	ctx context.Context,
	filePath string,
	logger logging.Logger,
) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(
	ctx context.Context,
	originalPath string,
	r io.Reader,
	logger logging.Logger,
) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewBlankLogger("config")
	}

	dec := json.NewDecoder(r)
	// keep numbers exact so fractional values are rejected for integer fields
	dec.UseNumber()
	var attributes map[string]interface{}
	if err := dec.Decode(&attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode Config from json")
	}

	cfg := &Config{
		ConfigFilePath: originalPath,
		LogLevel:       logging.INFO,
	}
	unused, err := decode(attributes, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode Config")
	}
	if len(unused) != 0 {
		logger.Warnw("ignoring unknown config keys", "path", originalPath, "keys", unused)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to process Config")
	}

	logger.Infow("loaded config", "path", originalPath, "axes", cfg.AxisNames(), "log_level", cfg.LogLevel)
	return cfg, nil
}

// decode fills result from attributes using json field names and returns the keys that were not
// used.
func decode(attributes map[string]interface{}, result interface{}) ([]string, error) {
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     result,
		Metadata:   &md,
		DecodeHook: levelHook,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, err
	}
	return md.Unused, nil
}

var levelType = reflect.TypeOf(logging.INFO)

func levelHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != levelType || from.Kind() != reflect.String {
		return data, nil
	}
	return logging.LevelFromString(data.(string))
}
