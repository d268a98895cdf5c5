package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/akarstad/netpulse/internal/constants"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// configFileNames are searched in order when a directory is given.
var configFileNames = []string{
	"netpulse.yml",
	"netpulse.yaml",
	"netpulse.toml",
	"netpulse.json",
}

// LoadDaemonConfig loads, normalizes and validates the daemon configuration.
// path may be a config file, a directory to search, or empty. An empty path
// first consults the NETPULSE_CONFIG environment variable and then searches
// the current directory; if no file is found the defaults are used.
func LoadDaemonConfig(path string) (DaemonConfig, error) {
	if path == "" {
		path = os.Getenv(constants.EnvVarConfig)
	}

	configFile, err := FindConfigFile(path)
	if err != nil {
		return DaemonConfig{}, err
	}

	var cfg DaemonConfig
	if configFile != "" {
		cfg, err = loadConfigFromFile(configFile)
		if err != nil {
			return DaemonConfig{}, err
		}
	}

	if token := os.Getenv(constants.EnvVarAPIToken); token != "" {
		cfg.Server.APIToken = token
	}

	normalized, err := cfg.Normalize()
	if err != nil {
		return DaemonConfig{}, err
	}

	if err := normalized.Validate(); err != nil {
		return DaemonConfig{}, err
	}

	return normalized, nil
}

// FindConfigFile resolves path to a concrete config file. An explicit file
// must exist; a directory is searched for the well-known file names; an empty
// path searches the current directory. Returns "" when nothing is found and
// no explicit file was requested.
func FindConfigFile(path string) (string, error) {
	if path == "" {
		path = "."
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) && (path == "." || path == "") {
			return "", nil
		}
		return "", fmt.Errorf("config path %s: %w", path, err)
	}

	if !info.IsDir() {
		return path, nil
	}

	for _, name := range configFileNames {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", nil
}

func loadConfigFromFile(configFile string) (DaemonConfig, error) {
	format, err := getConfigFormat(configFile)
	if err != nil {
		return DaemonConfig{}, err
	}

	parser, err := getConfigParser(format)
	if err != nil {
		return DaemonConfig{}, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(configFile), parser); err != nil {
		return DaemonConfig{}, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := checkUnknownKeys(reflect.TypeOf(DaemonConfig{}), k.Keys(), format); err != nil {
		return DaemonConfig{}, err
	}

	var cfg DaemonConfig
	decoderConfig := &mapstructure.DecoderConfig{
		TagName:    format,
		Result:     &cfg,
		Squash:     true,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	}

	unmarshalConf := koanf.UnmarshalConf{
		Tag:           format,
		DecoderConfig: decoderConfig,
	}

	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return DaemonConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// checkUnknownKeys rejects config keys that don't map to a struct field. The
// key set comes from koanf as dotted paths (e.g. "server.port").
func checkUnknownKeys(t reflect.Type, keys []string, tagName string) error {
	known := make(map[string]bool)
	collectFieldKeys(t, "", tagName, known)

	for _, key := range keys {
		if !known[key] {
			return fmt.Errorf("unknown config key: %s", key)
		}
	}
	return nil
}

func collectFieldKeys(t reflect.Type, prefix, tagName string, known map[string]bool) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == reflect.TypeOf(time.Time{}) {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		known[key] = true

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		// time.Duration is a named int64; don't descend into it.
		if ft.Kind() == reflect.Struct {
			collectFieldKeys(ft, key, tagName, known)
		}
	}
}
