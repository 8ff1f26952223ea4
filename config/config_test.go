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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/attrx/cache/strategy"
	"dirpx.dev/attrx/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.PositiveCapacity != config.DefaultPositiveCapacity {
		t.Fatalf("PositiveCapacity = %d, want %d", got.PositiveCapacity, config.DefaultPositiveCapacity)
	}
	if got.NegativeCapacity != config.DefaultNegativeCapacity {
		t.Fatalf("NegativeCapacity = %d, want %d", got.NegativeCapacity, config.DefaultNegativeCapacity)
	}
	if got.Policy != config.DefaultPolicy {
		t.Fatalf("Policy = %v, want %v", got.Policy, config.DefaultPolicy)
	}
	if got.ShallowFirst != config.DefaultShallowFirst {
		t.Fatalf("ShallowFirst = %v, want %v", got.ShallowFirst, config.DefaultShallowFirst)
	}
	if got.OverlayProjection != config.DefaultOverlayProjection {
		t.Fatalf("OverlayProjection = %v, want %v", got.OverlayProjection, config.DefaultOverlayProjection)
	}
	if got.MixMerge != config.DefaultMixMerge {
		t.Fatalf("MixMerge = %v, want %v", got.MixMerge, config.DefaultMixMerge)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	if got := config.NewConfig(); got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithCapacity_NonPositive_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithPositiveCapacity(3), config.WithNegativeCapacity(4))
	if c.PositiveCapacity != 3 || c.NegativeCapacity != 4 {
		t.Fatalf("capacities = %d/%d, want 3/4", c.PositiveCapacity, c.NegativeCapacity)
	}

	c = config.NewConfig(config.WithPositiveCapacity(0), config.WithNegativeCapacity(-1))
	if c.PositiveCapacity != config.DefaultPositiveCapacity {
		t.Fatalf("PositiveCapacity = %d, want default", c.PositiveCapacity)
	}
	if c.NegativeCapacity != config.DefaultNegativeCapacity {
		t.Fatalf("NegativeCapacity = %d, want default", c.NegativeCapacity)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithShallowFirst(false),
		config.WithShallowFirst(true),
		config.WithPolicy(strategy.None),
		config.WithPolicy(strategy.Access),
		config.WithOverlayProjection(true),
		config.WithMixMerge(false),
	)

	if !c.ShallowFirst {
		t.Errorf("ShallowFirst = %v, want true (last option wins)", c.ShallowFirst)
	}
	if c.Policy != strategy.Access {
		t.Errorf("Policy = %v, want access (last option wins)", c.Policy)
	}
	if !c.OverlayProjection || c.MixMerge {
		t.Errorf("OverlayProjection/MixMerge = %v/%v, want true/false", c.OverlayProjection, c.MixMerge)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_Values(t *testing.T) {
	v := viper.New()
	v.Set(config.KeyPositiveCapacity, 5)
	v.Set(config.KeyNegativeCapacity, 0)
	v.Set(config.KeyPolicy, "lru")
	v.Set(config.KeyShallowFirst, false)
	v.Set(config.KeyOverlayProjection, true)
	v.Set(config.KeyMixMerge, false)

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(
		config.WithPositiveCapacity(5),
		config.WithPolicy(strategy.Access),
		config.WithShallowFirst(false),
		config.WithOverlayProjection(true),
		config.WithMixMerge(false),
	), cfg)
}

func TestLoad_InvalidPolicy(t *testing.T) {
	v := viper.New()
	v.Set(config.KeyPolicy, "lfu")

	_, err := config.Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.KeyPolicy)
}

func TestNewViper_Environment(t *testing.T) {
	t.Setenv("ATTRX_CACHE_NEGATIVE_CAPACITY", "9")
	t.Setenv("ATTRX_RESOLVE_MIX_MERGE", "false")

	cfg, err := config.Load(config.NewViper())
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.NegativeCapacity)
	assert.False(t, cfg.MixMerge)
	assert.Equal(t, config.DefaultPositiveCapacity, cfg.PositiveCapacity)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attrx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cache:
  positive_capacity: 16
  policy: none
resolve:
  overlay_projection: true
`), 0o600))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.PositiveCapacity)
	assert.Equal(t, config.DefaultNegativeCapacity, cfg.NegativeCapacity)
	assert.Equal(t, strategy.None, cfg.Policy)
	assert.True(t, cfg.OverlayProjection)
	assert.True(t, cfg.ShallowFirst)

	_, err = config.LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
