package config

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Source represents where a configuration value came from
type Source string

const (
	SourceDefault     Source = "default"
	SourceSystem      Source = "system"      // /etc/pyhints/config.toml
	SourceUser        Source = "user"        // ~/.pyhints/config.toml
	SourceProject     Source = "project"     // pyhints.toml found upward from cwd
	SourceExplicit    Source = "file"        // --config
	SourceEnvironment Source = "environment" // PYHINTS_* env vars
	SourceFlag        Source = "flag"
)

// SettingInfo describes one effective setting
type SettingInfo struct {
	Key        string      `json:"key"`
	Value      interface{} `json:"value"`
	Source     Source      `json:"source"`
	SourcePath string      `json:"source_path,omitempty"` // file path or env var name
}

// Introspection records the origin of every setting of one load.
type Introspection struct {
	v       *viper.Viper
	origins map[string]SettingInfo
}

func newIntrospection(v *viper.Viper) *Introspection {
	return &Introspection{v: v, origins: make(map[string]SettingInfo)}
}

func (in *Introspection) trackFile(settings map[string]interface{}, source Source, path string) {
	flatten(settings, "", func(key string) {
		in.origins[key] = SettingInfo{Key: key, Source: source, SourcePath: path}
	})
}

func (in *Introspection) trackEnvironment() {
	for _, key := range in.v.AllKeys() {
		name := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if _, ok := os.LookupEnv(name); ok {
			in.origins[key] = SettingInfo{Key: key, Source: SourceEnvironment, SourcePath: name}
		}
	}
}

// TrackFlag records that a command-line flag overrode key.
func (in *Introspection) TrackFlag(key, flag string, value interface{}) {
	in.origins[key] = SettingInfo{Key: key, Value: value, Source: SourceFlag, SourcePath: "--" + flag}
}

// Settings returns every known setting sorted by key.
func (in *Introspection) Settings() []SettingInfo {
	keys := in.v.AllKeys()
	sort.Strings(keys)

	out := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		info, ok := in.origins[key]
		if !ok {
			info = SettingInfo{Key: key, Source: SourceDefault}
		}
		if info.Source != SourceFlag {
			info.Value = in.v.Get(key)
		}
		out = append(out, info)
	}
	return out
}

// SourceOf returns where key was last set.
func (in *Introspection) SourceOf(key string) Source {
	if info, ok := in.origins[key]; ok {
		return info.Source
	}
	return SourceDefault
}

func flatten(m map[string]interface{}, prefix string, fn func(string)) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flatten(nested, key, fn)
			continue
		}
		fn(key)
	}
}
