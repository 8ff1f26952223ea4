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

package cache_test

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/cache"
	"dirpx.dev/attrx/cache/strategy"
	"dirpx.dev/attrx/config"
	"dirpx.dev/attrx/model"
)

func TestMetadata_PositiveAndNegative(t *testing.T) {
	m := cache.New(config.DefaultConfig(), cache.WithLogger(zaptest.NewLogger(t)))
	k1 := model.NewKind("K1")
	k2 := model.NewKind("K2")
	d := model.NewDeclaration("D", apis.ElementTypeDecl)

	_, ok := m.Lookup(d, k1)
	assert.False(t, ok)
	assert.False(t, m.Absent(d, k1))

	i1 := model.Default(k1)
	m.Store(d, i1)
	m.MarkAbsent(d, k2)

	got, ok := m.Lookup(d, k1)
	require.True(t, ok)
	assert.Same(t, i1, got)
	_, ok = m.Lookup(d, k2)
	assert.False(t, ok)
	assert.True(t, m.Absent(d, k2))
	assert.False(t, m.Absent(d, k1))

	s := m.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.NegativeHits)
	assert.Equal(t, 1, s.Positive)
	assert.Equal(t, 1, s.Negative)
}

func TestMetadata_StoreClearsNegative(t *testing.T) {
	m := cache.New(config.DefaultConfig())
	k := model.NewKind("K")
	d := model.NewDeclaration("D", apis.ElementTypeDecl)

	m.MarkAbsent(d, k)
	require.True(t, m.Absent(d, k))

	m.Store(d, model.Default(k))
	assert.False(t, m.Absent(d, k))
	_, ok := m.Lookup(d, k)
	assert.True(t, ok)
}

func TestMetadata_EvictionByDeclaration(t *testing.T) {
	m := cache.New(config.NewConfig(config.WithPositiveCapacity(2), config.WithNegativeCapacity(1)),
		cache.WithLogger(zaptest.NewLogger(t)))
	k := model.NewKind("K")
	decls := []*model.Declaration{
		model.NewDeclaration("D1", apis.ElementTypeDecl),
		model.NewDeclaration("D2", apis.ElementTypeDecl),
		model.NewDeclaration("D3", apis.ElementTypeDecl),
	}
	for _, d := range decls {
		m.Store(d, model.Default(k))
		m.MarkAbsent(d, model.Retention)
	}

	_, ok := m.Lookup(decls[0], k)
	assert.False(t, ok)
	for _, d := range decls[1:] {
		_, ok := m.Lookup(d, k)
		assert.True(t, ok, d.Name())
	}
	assert.False(t, m.Absent(decls[1], model.Retention))
	assert.True(t, m.Absent(decls[2], model.Retention))

	s := m.Stats()
	assert.Equal(t, 2, s.Positive)
	assert.Equal(t, 1, s.Negative)
	assert.Equal(t, uint64(1+2), s.Evictions)
}

func TestMetadata_NonPositiveCapacityFallsBack(t *testing.T) {
	m := cache.New(apis.Config{})
	k := model.NewKind("K")
	for i := 0; i < config.DefaultPositiveCapacity; i++ {
		m.Store(model.NewDeclaration("D", apis.ElementTypeDecl), model.Default(k))
	}
	assert.Equal(t, config.DefaultPositiveCapacity, m.Stats().Positive)
	assert.Zero(t, m.Stats().Evictions)
}

func TestMetadata_ClearAndCapacity(t *testing.T) {
	m := cache.New(config.DefaultConfig())
	k := model.NewKind("K")
	for i := 0; i < 4; i++ {
		d := model.NewDeclaration("D", apis.ElementTypeDecl)
		m.Store(d, model.Default(k))
		m.MarkAbsent(d, model.Retention)
	}

	m.SetPositiveCapacity(1)
	m.SetNegativeCapacity(2)
	assert.Equal(t, 4, m.Stats().Positive)

	d := model.NewDeclaration("Last", apis.ElementTypeDecl)
	m.Store(d, model.Default(k))
	m.MarkAbsent(d, model.Retention)
	assert.Equal(t, 1, m.Stats().Positive)
	assert.Equal(t, 2, m.Stats().Negative)

	m.Clear()
	assert.Zero(t, m.Stats().Positive)
	assert.Zero(t, m.Stats().Negative)
	_, ok := m.Lookup(d, k)
	assert.False(t, ok)
}

func TestMetadata_NonePolicy(t *testing.T) {
	m := cache.New(config.NewConfig(config.WithPolicy(strategy.None)))
	k := model.NewKind("K")
	d := model.NewDeclaration("D", apis.ElementTypeDecl)

	m.Store(d, model.Default(k))
	m.MarkAbsent(d, model.Retention)
	_, ok := m.Lookup(d, k)
	assert.False(t, ok)
	assert.False(t, m.Absent(d, model.Retention))
}

// TestMetadata_ConcurrentWritesSameDeclaration stores many kinds on one
// declaration from many goroutines; none of them may be lost.
func TestMetadata_ConcurrentWritesSameDeclaration(t *testing.T) {
	m := cache.New(config.DefaultConfig())
	d := model.NewDeclaration("D", apis.ElementTypeDecl)

	workers := runtime.GOMAXPROCS(0) * 4
	kinds := make([]*model.Kind, workers)
	for i := range kinds {
		kinds[i] = model.NewKind("K")
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(k *model.Kind) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				m.Store(d, model.Default(k))
				m.MarkAbsent(d, model.Retention)
				_, _ = m.Lookup(d, k)
			}
		}(kinds[w])
	}
	wg.Wait()

	for _, k := range kinds {
		_, ok := m.Lookup(d, k)
		assert.True(t, ok)
	}
	assert.Equal(t, 1, m.Stats().Positive)
}
