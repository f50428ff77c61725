package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jornada/internal/modules/content/domain"
	"jornada/internal/modules/content/service"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type fakeGenerator struct {
	textCalls atomic.Int32
	jsonCalls atomic.Int32
	text      func(prompt string) (string, error)
	json      func(prompt string) (string, error)
}

func (g *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.textCalls.Add(1)
	if g.text == nil {
		return "", errors.New("offline")
	}
	return g.text(prompt)
}

func (g *fakeGenerator) GenerateJSON(_ context.Context, prompt string, _ domain.Schema) (string, error) {
	g.jsonCalls.Add(1)
	if g.json == nil {
		return "", errors.New("offline")
	}
	return g.json(prompt)
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]domain.CachedText
	fail  bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]domain.CachedText{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (domain.CachedText, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return domain.CachedText{}, false, errors.New("disk full")
	}
	item, ok := c.items[key]
	return item, ok, nil
}

func (c *memoryCache) Put(_ context.Context, text domain.CachedText) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("disk full")
	}
	c.items[text.Key] = text
	return nil
}

func (c *memoryCache) Remove(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	delete(c.items, key)
	return ok, nil
}

func (c *memoryCache) List(context.Context) ([]domain.CachedText, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CachedText, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (c *memoryCache) Clear(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.items)
	c.items = map[string]domain.CachedText{}
	return n, nil
}

func newGateway(gen *fakeGenerator, cache *memoryCache) *service.GatewayService {
	return service.NewGatewayService(gen, cache, fakeClock{now: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)}, nil)
}

const validDevotional = `{"title":"Descanso","verse":"Gn 2:2","reflection":"Deus descansou.","practicalPoints":["Ore","Leia","Sirva"],"prayer":"Amém"}`

func TestFetchReadingTextCacheHitSkipsGenerator(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{}
	cache := newMemoryCache()
	require.NoError(t, cache.Put(context.Background(), domain.NewCachedText("ARC", "Gênesis 1-4", "1 No princípio", time.Now())))

	got := newGateway(gen, cache).FetchReadingText(context.Background(), "Gênesis 1-4", "ARC")

	assert.True(t, got.Cached)
	assert.False(t, got.Fallback)
	assert.Equal(t, "1 No princípio", got.Text)
	assert.Zero(t, gen.textCalls.Load())
}

func TestFetchReadingTextFallsBackOnFailure(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{}
	got := newGateway(gen, newMemoryCache()).FetchReadingText(context.Background(), "Salmos 23", "KJV")

	assert.True(t, got.Fallback)
	assert.False(t, got.Cached)
	assert.Equal(t, domain.ConnectionErrorText("Salmos 23", "KJV"), got.Text)
	assert.EqualValues(t, 1, gen.textCalls.Load())
}

func TestFetchReadingTextStripsMarkup(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{text: func(string) (string, error) {
		return "<p>1 O Senhor é o meu pastor & nada me faltará.</p><script>alert(1)</script>", nil
	}}
	got := newGateway(gen, newMemoryCache()).FetchReadingText(context.Background(), "Salmos 23", "ARC")

	assert.False(t, got.Fallback)
	assert.Equal(t, "1 O Senhor é o meu pastor & nada me faltará.", got.Text)
}

func TestFetchReadingTextReadsThroughBrokenCache(t *testing.T) {
	t.Parallel()
	cache := newMemoryCache()
	cache.fail = true
	gen := &fakeGenerator{text: func(string) (string, error) { return "texto", nil }}

	got := newGateway(gen, cache).FetchReadingText(context.Background(), "João 1", "ARC")
	assert.Equal(t, "texto", got.Text)
	assert.False(t, got.Cached)
}

func TestGenerateDevotionalValidatesShape(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		ok   bool
	}{
		{name: "complete", body: validDevotional, ok: true},
		{name: "fenced", body: "```json\n" + validDevotional + "\n```", ok: true},
		{name: "missing prayer", body: `{"title":"t","verse":"v","reflection":"r","practicalPoints":["a"]}`},
		{name: "empty points", body: `{"title":"t","verse":"v","reflection":"r","practicalPoints":[],"prayer":"p"}`},
		{name: "blank point", body: `{"title":"t","verse":"v","reflection":"r","practicalPoints":[""],"prayer":"p"}`},
		{name: "markup only title", body: `{"title":"<b></b>","verse":"v","reflection":"r","practicalPoints":["a"],"prayer":"p"}`},
		{name: "markup only point", body: `{"title":"t","verse":"v","reflection":"r","practicalPoints":["<i></i>"],"prayer":"p"}`},
		{name: "not json", body: `Desculpe, não posso ajudar.`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gen := &fakeGenerator{json: func(string) (string, error) { return tc.body, nil }}
			devotional, ok := newGateway(gen, newMemoryCache()).GenerateDevotional(context.Background(), []string{"Gênesis 1-4"}, "No Princípio")
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, "Descanso", devotional.Title)
				assert.Equal(t, []string{"Ore", "Leia", "Sirva"}, devotional.PracticalPoints)
			} else {
				assert.Equal(t, domain.Devotional{}, devotional)
			}
		})
	}
}

func TestGenerateDevotionalSharesConcurrentIdenticalRequests(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	gen := &fakeGenerator{json: func(string) (string, error) {
		started <- struct{}{}
		<-release
		return validDevotional, nil
	}}
	gateway := newGateway(gen, newMemoryCache())
	readings := []string{"Gênesis 1-4", "Gênesis 5-8"}

	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = gateway.GenerateDevotional(context.Background(), readings, "No Princípio")
		}(i)
		if i == 0 {
			<-started
		}
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, []bool{true, true}, results)
	assert.EqualValues(t, 1, gen.jsonCalls.Load())
}

func TestTextFallbacks(t *testing.T) {
	t.Parallel()
	gateway := newGateway(&fakeGenerator{}, newMemoryCache())
	ctx := context.Background()

	assert.Equal(t, domain.PhraseFallback, gateway.GenerateShortPhrase(ctx, "No Princípio"))
	assert.Equal(t, domain.MessianicFallback, gateway.MessianicConnection(ctx, "Gênesis 3"))
	_, ok := gateway.LookupTerm(ctx, "Graça")
	assert.False(t, ok)
}

func TestEmptyGenerationUsesFallback(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{text: func(string) (string, error) { return "  <b></b> ", nil }}
	assert.Equal(t, domain.PhraseFallback, newGateway(gen, newMemoryCache()).GenerateShortPhrase(context.Background(), "tema"))
}

func TestLookupTerm(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{json: func(string) (string, error) {
		return `{"term":"Graça","definition":"Favor <em>imerecido</em>."}`, nil
	}}
	gateway := newGateway(gen, newMemoryCache())

	term, ok := gateway.LookupTerm(context.Background(), "Graça")
	require.True(t, ok)
	assert.Equal(t, domain.Term{Term: "Graça", Definition: "Favor imerecido."}, term)

	_, ok = gateway.LookupTerm(context.Background(), "   ")
	assert.False(t, ok)
	assert.EqualValues(t, 1, gen.jsonCalls.Load())
}

func TestLookupTermRejectsMarkupOnlyDefinition(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{json: func(string) (string, error) {
		return `{"term":"Graça","definition":"<p> </p>"}`, nil
	}}
	term, ok := newGateway(gen, newMemoryCache()).LookupTerm(context.Background(), "Graça")
	assert.False(t, ok)
	assert.Equal(t, domain.Term{}, term)
}

func TestSaveTextRefusesFallback(t *testing.T) {
	t.Parallel()
	cache := newMemoryCache()
	gateway := newGateway(&fakeGenerator{}, cache)
	ctx := context.Background()

	text := gateway.FetchReadingText(ctx, "Salmos 1", "ARC")
	require.Error(t, gateway.SaveText(ctx, text))
	assert.False(t, gateway.IsStored(ctx, "Salmos 1", "ARC"))

	require.NoError(t, gateway.SaveText(ctx, domain.ReadingText{Reference: "Salmos 1", Edition: "ARC", Text: "Bem-aventurado"}))
	assert.True(t, gateway.IsStored(ctx, "Salmos 1", "ARC"))

	stored, err := gateway.StoredTexts(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC), stored[0].SavedAt)

	removed, err := gateway.RemoveText(ctx, "Salmos 1", "ARC")
	require.NoError(t, err)
	assert.True(t, removed)
	n, err := gateway.ClearTexts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
