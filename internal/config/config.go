package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/modforge-labs/modforge/internal/branding"
	"github.com/modforge-labs/modforge/internal/deps"
	ferrors "github.com/modforge-labs/modforge/internal/errors"
)

const fileType = "yaml"

// Config keys.
const (
	KeySourceRoot      = "source_root"
	KeyManifest        = "manifest"
	KeyDefinitions     = "definitions"
	KeyDefaultsPublic  = "defaults.public"
	KeyDefaultsPrivate = "defaults.private"
	KeyCopyright       = "copyright"
)

// DefaultPublicDependencies are applied when no defaults are configured.
var DefaultPublicDependencies = []string{"Core", "CoreUObject", "Engine"}

// Settings is the resolved configuration for one run.
type Settings struct {
	SourceRoot  string        `yaml:"source_root"`
	Manifest    string        `yaml:"manifest"`
	Definitions string        `yaml:"definitions"`
	Defaults    deps.Defaults `yaml:"defaults"`
	Copyright   string        `yaml:"copyright,omitempty"`
}

// FileName returns the default config file name (modforge.yaml).
func FileName() string {
	return branding.ConfigName() + "." + fileType
}

// New returns a Viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDefinitions, "modules.yaml")
	v.SetDefault(KeyDefaultsPublic, DefaultPublicDependencies)
	v.SetDefault(KeyDefaultsPrivate, []string{})
	v.SetDefault(KeyCopyright, "")

	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env and the config file into v. With an explicit configFile a
// missing file is an error; otherwise modforge.yaml in the working directory
// is optional.
func Load(v *viper.Viper, configFile string) error {
	// Ignore error if .env doesn't exist.
	_ = godotenv.Load()

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return ferrors.NotFoundError(fmt.Sprintf("config file not found: %s", configFile)).
				WithContext("path", configFile).
				Build()
		}
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(branding.ConfigName())
		v.AddConfigPath(".")
	}
	v.SetConfigType(fileType)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return ferrors.WrapError(err, ferrors.CategoryConfig, "reading config file").Build()
	}
	return nil
}

// Resolve returns the typed settings held by v.
func Resolve(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		SourceRoot:  v.GetString(KeySourceRoot),
		Manifest:    v.GetString(KeyManifest),
		Definitions: v.GetString(KeyDefinitions),
		Defaults: deps.Defaults{
			Public:  v.GetStringSlice(KeyDefaultsPublic),
			Private: v.GetStringSlice(KeyDefaultsPrivate),
		},
		Copyright: v.GetString(KeyCopyright),
	}

	for _, req := range []struct{ key, val string }{
		{KeySourceRoot, s.SourceRoot},
		{KeyManifest, s.Manifest},
		{KeyDefinitions, s.Definitions},
	} {
		if req.val == "" {
			return nil, ferrors.ConfigError(fmt.Sprintf("%s is not set (flag --%s, env %s or %s in %s)",
				req.key, flagName(req.key), branding.EnvVar(req.key), req.key, FileName())).
				WithContext("key", req.key).
				Build()
		}
	}
	return s, nil
}

// Starter returns the contents of a starter config file.
func Starter(s Settings) ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding starter config: %w", err)
	}
	return out, nil
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
