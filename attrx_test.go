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

package attrx

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/builder"
	"dirpx.dev/attrx/config"
	"dirpx.dev/attrx/model"
)

// reset installs a clean snapshot built by b and restores the previous one
// when the test ends.
func reset(tb testing.TB, b apis.Builder, cfg apis.Config) {
	tb.Helper()
	prev := st.Load()
	tb.Cleanup(func() { st.Store(prev) })

	s := &state{cfg: cfg, log: zap.NewNop(), inst: model.Instantiator{}, bld: b}
	s.res = build(s)
	st.Store(s)
}

// ---------------------- Test doubles (mocks) ----------------------

// countingBuilder delegates to the real builder and records what it saw.
type countingBuilder struct {
	mu        sync.Mutex
	inner     apis.Builder
	lastCfg   apis.Config
	lastInst  apis.Instantiator
	lastLog   *zap.Logger
	resolvers int
	nilRes    bool
}

func newCountingBuilder() *countingBuilder {
	return &countingBuilder{inner: builder.New()}
}

func (b *countingBuilder) BuildCache(cfg apis.Config, log *zap.Logger) apis.Cache {
	return b.inner.BuildCache(cfg, log)
}

func (b *countingBuilder) BuildResolver(cfg apis.Config, c apis.Cache, inst apis.Instantiator, log *zap.Logger) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastInst, b.lastLog = cfg, inst, log
	if b.nilRes {
		return nil
	}
	b.resolvers++
	return b.inner.BuildResolver(cfg, c, inst, log)
}

func (b *countingBuilder) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resolvers
}

// taggingInstantiator records how many instances it synthesized.
type taggingInstantiator struct {
	mu sync.Mutex
	n  int
}

func (i *taggingInstantiator) Instantiate(k apis.Kind, values map[string]any) (apis.Instance, error) {
	i.mu.Lock()
	i.n++
	i.mu.Unlock()
	return model.Instantiator{}.Instantiate(k, values)
}

// vocabulary returns Route meta-annotated with Handler, and a declaration
// carrying Route.
func vocabulary() (handler, route *model.Kind, decl *model.Declaration) {
	handler = model.NewKind("Handler").WithValue(apis.TypeOf(apis.String), "")
	route = model.NewKind("Route").
		WithValue(apis.TypeOf(apis.String), "").
		WithProjection(handler, "").
		Annotate(model.Default(handler))
	decl = model.NewDeclaration("Users", apis.ElementTypeDecl).
		Annotate(model.New(route, map[string]any{"value": "/users"}))
	return handler, route, decl
}

// ---------------------- Tests ----------------------

func TestResolve_Global(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())
	handler, route, decl := vocabulary()

	got, err := Resolve(decl, handler)
	require.NoError(t, err)
	require.NotNil(t, got)
	v, err := got.Get("value")
	require.NoError(t, err)
	assert.Equal(t, "/users", v)

	ok, err := Contains(decl, route)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Contains(decl, model.Retention)
	require.NoError(t, err)
	assert.False(t, ok)

	s := Stats()
	assert.GreaterOrEqual(t, s.Negative, 1)
	assert.GreaterOrEqual(t, s.Positive, 1)

	ClearCache()
	s = Stats()
	assert.Zero(t, s.Positive)
	assert.Zero(t, s.Negative)
}

func TestResolve_NilArguments(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())
	handler, _, decl := vocabulary()

	_, err := Resolve(nil, handler)
	require.Error(t, err)
	_, err = Resolve(decl, nil)
	require.Error(t, err)
}

func TestSetCacheCapacity_AppliesToLiveCaches(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())
	SetPositiveCacheCapacity(1)
	SetNegativeCacheCapacity(1)

	handler := model.NewKind("Handler")
	// Not applicable to kinds, so absence is recorded without a walk.
	method := model.NewKind("Method").WithTargets(apis.ElementMethod)
	for i := 0; i < 4; i++ {
		d := model.NewDeclaration("D", apis.ElementTypeDecl).Annotate(model.Default(handler))
		_, err := Resolve(d, handler)
		require.NoError(t, err)
		_, err = Resolve(d, method)
		require.NoError(t, err)
	}

	s := Stats()
	assert.Equal(t, 1, s.Positive)
	assert.Equal(t, 1, s.Negative)
	assert.Equal(t, uint64(6), s.Evictions)
}

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := newCountingBuilder()
	reset(t, b, config.DefaultConfig())

	res1 := Resolver()
	cfg := config.NewConfig(config.WithPositiveCapacity(7), config.WithShallowFirst(false))
	SetConfig(cfg)

	assert.NotSame(t, res1, Resolver())
	assert.Equal(t, cfg, Config())
	b.mu.Lock()
	assert.Equal(t, cfg, b.lastCfg)
	b.mu.Unlock()
}

func TestSetConfig_StartsCold(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())
	handler, _, decl := vocabulary()

	_, err := Resolve(decl, handler)
	require.NoError(t, err)
	require.NotZero(t, Stats().Positive)

	SetConfig(config.DefaultConfig())
	assert.Zero(t, Stats().Positive)
	assert.Zero(t, Stats().Computes)
}

func TestSetResolver_PinsResolver(t *testing.T) {
	b := newCountingBuilder()
	reset(t, b, config.DefaultConfig())

	custom := builder.New().BuildResolver(config.DefaultConfig(), builder.New().BuildCache(config.DefaultConfig(), nil), nil, nil)
	SetResolver(custom)
	require.True(t, IsResolverPinned())

	before := b.count()
	SetConfig(config.NewConfig(config.WithMixMerge(false)))
	assert.Same(t, custom, Resolver())
	assert.Equal(t, before, b.count())

	UnpinResolver()
	assert.False(t, IsResolverPinned())
	assert.Same(t, custom, Resolver())

	SetConfig(config.DefaultConfig())
	assert.NotSame(t, custom, Resolver())
	assert.Equal(t, before+1, b.count())
}

func TestSetBuilder_Rebuilds_Unpinned(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())

	b := newCountingBuilder()
	SetBuilder(b)
	assert.Same(t, b, Builder())
	assert.Equal(t, 1, b.count())

	SetBuilder(nil)
	assert.Same(t, b, Builder())
}

func TestSetLogger_And_SetInstantiator_PassedToBuilder(t *testing.T) {
	b := newCountingBuilder()
	reset(t, b, config.DefaultConfig())

	log := zaptest.NewLogger(t)
	SetLogger(log)
	assert.Same(t, log, Logger())

	in := &taggingInstantiator{}
	SetInstantiator(in)
	assert.Same(t, in, Instantiator())

	b.mu.Lock()
	assert.Same(t, log, b.lastLog)
	assert.Same(t, in, b.lastInst)
	b.mu.Unlock()

	// Projection goes through the installed instantiator.
	handler, _, decl := vocabulary()
	_, err := Resolve(decl, handler)
	require.NoError(t, err)
	in.mu.Lock()
	assert.Positive(t, in.n)
	in.mu.Unlock()

	SetLogger(nil)
	SetInstantiator(nil)
	assert.Same(t, log, Logger())
	assert.Same(t, in, Instantiator())
}

func TestSetBuilder_NilResolver_Panics(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())
	b := newCountingBuilder()
	b.nilRes = true

	assert.PanicsWithValue(t, ErrNilResolver, func() { SetBuilder(b) })
	assert.NotSame(t, b, Builder())
}

func TestDefaultInstance(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())

	inst, err := DefaultInstance(model.Retention, nil)
	require.NoError(t, err)
	v, err := inst.Get("value")
	require.NoError(t, err)
	assert.Equal(t, "runtime", v)

	_, err = DefaultInstance(model.Retention, map[string]any{"missing": 1})
	require.Error(t, err)
}

func TestResolve_Concurrent_With_SetConfig(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())
	handler, route, decl := vocabulary()

	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				got, err := Resolve(decl, handler)
				if err != nil || got == nil {
					t.Errorf("Resolve: %v %v", got, err)
					return
				}
				if _, err := Contains(decl, route); err != nil {
					t.Errorf("Contains: %v", err)
					return
				}
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(config.NewConfig(
				config.WithPositiveCapacity(1+i%3),
				config.WithShallowFirst(i%2 == 0),
			))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
