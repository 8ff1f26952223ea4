/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"strings"

	"github.com/spf13/viper"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/cache/strategy"
	"dirpx.dev/attrx/errors"
)

// EnvPrefix is the prefix of environment overrides, e.g. ATTRX_CACHE_POSITIVE_CAPACITY.
const EnvPrefix = "ATTRX"

// Keys understood by Load.
const (
	KeyPositiveCapacity  = "cache.positive_capacity"
	KeyNegativeCapacity  = "cache.negative_capacity"
	KeyPolicy            = "cache.policy"
	KeyShallowFirst      = "resolve.shallow_first"
	KeyOverlayProjection = "resolve.overlay_projection"
	KeyMixMerge          = "resolve.mix_merge"
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPositiveCapacity, DefaultPositiveCapacity)
	v.SetDefault(KeyNegativeCapacity, DefaultNegativeCapacity)
	v.SetDefault(KeyPolicy, DefaultPolicy.String())
	v.SetDefault(KeyShallowFirst, DefaultShallowFirst)
	v.SetDefault(KeyOverlayProjection, DefaultOverlayProjection)
	v.SetDefault(KeyMixMerge, DefaultMixMerge)
}

// NewViper returns a viper instance with defaults and ATTRX_* environment
// overrides bound. No config file is read.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load builds an apis.Config from v. Unset keys keep their defaults.
func Load(v *viper.Viper) (apis.Config, error) {
	SetDefaults(v)

	policy, err := strategy.Parse(v.GetString(KeyPolicy))
	if err != nil {
		return apis.Config{}, errors.Wrapf(err, "config: %s", KeyPolicy)
	}

	return NewConfig(
		WithPositiveCapacity(v.GetInt(KeyPositiveCapacity)),
		WithNegativeCapacity(v.GetInt(KeyNegativeCapacity)),
		WithPolicy(policy),
		WithShallowFirst(v.GetBool(KeyShallowFirst)),
		WithOverlayProjection(v.GetBool(KeyOverlayProjection)),
		WithMixMerge(v.GetBool(KeyMixMerge)),
	), nil
}

// LoadFile reads a config file (any format viper understands, chosen by
// extension) with ATTRX_* environment overrides applied on top.
func LoadFile(path string) (apis.Config, error) {
	v := NewViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return apis.Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	return Load(v)
}
