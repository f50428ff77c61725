package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jornada/internal/modules/content/domain"
	"jornada/internal/modules/content/dto"
	contentin "jornada/internal/modules/content/port/in"
	"jornada/internal/modules/content/service"
	"jornada/internal/modules/content/usecase"
	apperrors "jornada/internal/platform/errors"
)

type fakeClock struct{}

func (fakeClock) Now() time.Time { return time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC) }

type fakeSchedule struct {
	entries []domain.ReadingRef
	today   string
}

func (s fakeSchedule) Entry(_ context.Context, key string) (domain.ReadingRef, error) {
	for _, e := range s.entries {
		if e.DateKey == key {
			return e, nil
		}
	}
	return domain.ReadingRef{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, key)
}

func (s fakeSchedule) Today(ctx context.Context) (domain.ReadingRef, bool, error) {
	if s.today == "" {
		return domain.ReadingRef{}, false, nil
	}
	ref, err := s.Entry(ctx, s.today)
	return ref, err == nil, err
}

func (s fakeSchedule) Preceding(_ context.Context, key string, n int) ([]domain.ReadingRef, error) {
	for i, e := range s.entries {
		if e.DateKey == key {
			start := i - n
			if start < 0 {
				start = 0
			}
			return append([]domain.ReadingRef(nil), s.entries[start:i]...), nil
		}
	}
	return nil, nil
}

type fakeKeeper struct {
	mu          sync.Mutex
	edition     string
	lastViewed  string
	devotionals map[string]domain.Devotional
	cacheErr    error
	cacheCalls  int
}

func (k *fakeKeeper) Edition(context.Context) (string, error) { return k.edition, nil }

func (k *fakeKeeper) SetLastViewed(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.lastViewed = key
	return nil
}

func (k *fakeKeeper) SavedDevotional(_ context.Context, key string) (domain.Devotional, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	d, ok := k.devotionals[key]
	return d, ok, nil
}

func (k *fakeKeeper) CacheDevotional(_ context.Context, key string, d domain.Devotional) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.cacheCalls++
	if k.cacheErr != nil {
		return k.cacheErr
	}
	k.devotionals[key] = d
	return nil
}

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	text    string
	json    string
}

func (g *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.text == "" {
		return "", errors.New("offline")
	}
	return g.text, nil
}

func (g *fakeGenerator) GenerateJSON(_ context.Context, prompt string, _ domain.Schema) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.json == "" {
		return "", errors.New("offline")
	}
	return g.json, nil
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]domain.CachedText
}

func (c *memoryCache) Get(_ context.Context, key string) (domain.CachedText, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	return item, ok, nil
}

func (c *memoryCache) Put(_ context.Context, text domain.CachedText) error {
	c.mu.Lock()
	defer c.mu.Unlock()
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

var week = []domain.ReadingRef{
	{DateKey: "01-05", Reading: "Gênesis 1-4", Focus: "No Princípio"},
	{DateKey: "01-06", Reading: "Gênesis 5-8", Focus: "No Princípio"},
	{DateKey: "01-07", Reading: "Gênesis 9-11", Focus: "No Princípio"},
	{DateKey: "01-08", Reading: "Jó 1-5", Focus: "No Princípio"},
	{DateKey: "01-09", Reading: "Jó 6-9", Focus: "No Princípio"},
	{DateKey: "01-10", Reading: "Jó 10-13", Focus: "No Princípio"},
	{DateKey: "01-11", Reading: "Meditação", Focus: "No Princípio", IsMeditationDay: true},
}

type fixture struct {
	uc     contentin.Usecase
	gen    *fakeGenerator
	keeper *fakeKeeper
	cache  *memoryCache
}

func newFixture(gen *fakeGenerator) fixture {
	keeper := &fakeKeeper{edition: "ARC", devotionals: map[string]domain.Devotional{}}
	cache := &memoryCache{items: map[string]domain.CachedText{}}
	gateway := service.NewGatewayService(gen, cache, fakeClock{}, nil)
	svc := service.NewReadingService(gateway, fakeSchedule{entries: week, today: "01-11"}, keeper, nil)
	return fixture{uc: usecase.NewInteractor(svc), gen: gen, keeper: keeper, cache: cache}
}

const devotionalJSON = `{"title":"Descanso","verse":"Gn 2:2","reflection":"r","practicalPoints":["a","b","c"],"prayer":"Amém"}`

func TestOpenReadingMeditationDayCarriesNoText(t *testing.T) {
	t.Parallel()
	f := newFixture(&fakeGenerator{text: "texto"})

	out, err := f.uc.OpenReading(context.Background(), dto.OpenReadingInput{})
	require.NoError(t, err)
	assert.Equal(t, "01-11", out.DateKey)
	assert.True(t, out.IsMeditationDay)
	assert.Empty(t, out.Text)
	assert.Zero(t, f.gen.calls())
	assert.Equal(t, "01-11", f.keeper.lastViewed)
}

func TestOpenReadingFetchesTextAndUpdatesLastViewed(t *testing.T) {
	t.Parallel()
	f := newFixture(&fakeGenerator{text: "1 No princípio"})

	out, err := f.uc.OpenReading(context.Background(), dto.OpenReadingInput{DateKey: "01-05", Edition: "kjv"})
	require.NoError(t, err)
	assert.Equal(t, "Gênesis 1-4", out.Reading)
	assert.Equal(t, "KJV", out.Edition)
	assert.Equal(t, "1 No princípio", out.Text)
	assert.False(t, out.Cached)
	assert.False(t, out.Fallback)
	assert.Equal(t, "01-05", f.keeper.lastViewed)
	require.Len(t, f.gen.prompts, 1)
	assert.Contains(t, f.gen.prompts[0], `"KJV"`)
}

func TestOpenReadingRejectsUnknownEdition(t *testing.T) {
	t.Parallel()
	f := newFixture(&fakeGenerator{text: "texto"})
	_, err := f.uc.OpenReading(context.Background(), dto.OpenReadingInput{DateKey: "01-05", Edition: "krv"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Zero(t, f.gen.calls())
	assert.Empty(t, f.keeper.lastViewed)
}

func TestOpenReadingUnknownKey(t *testing.T) {
	t.Parallel()
	f := newFixture(&fakeGenerator{})
	_, err := f.uc.OpenReading(context.Background(), dto.OpenReadingInput{DateKey: "02-29"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, f.keeper.lastViewed)
}

func TestDevotionalGeneratesFromPrecedingReadingsAndCaches(t *testing.T) {
	t.Parallel()
	f := newFixture(&fakeGenerator{json: devotionalJSON})
	ctx := context.Background()

	out, err := f.uc.Devotional(ctx, "01-11")
	require.NoError(t, err)
	assert.Equal(t, "Descanso", out.Title)
	assert.False(t, out.FromCache)
	require.Len(t, f.gen.prompts, 1)
	assert.Contains(t, f.gen.prompts[0], "Gênesis 1-4, Gênesis 5-8, Gênesis 9-11, Jó 1-5, Jó 6-9, Jó 10-13")
	assert.Contains(t, f.gen.prompts[0], `"No Princípio"`)

	again, err := f.uc.Devotional(ctx, "01-11")
	require.NoError(t, err)
	assert.True(t, again.FromCache)
	assert.Equal(t, out.PracticalPoints, again.PracticalPoints)
	assert.Equal(t, 1, f.gen.calls())
}

func TestDevotionalFailureLeavesCacheUntouched(t *testing.T) {
	t.Parallel()
	f := newFixture(&fakeGenerator{json: `{"title":"sem oração"}`})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.uc.Devotional(ctx, "01-11")
		assert.ErrorIs(t, err, apperrors.ErrGenerationUnavailable)
	}
	assert.Zero(t, f.keeper.cacheCalls)
	assert.Empty(t, f.keeper.devotionals)
	assert.Equal(t, 2, f.gen.calls())
}

func TestDevotionalReturnedWhenSaveFails(t *testing.T) {
	t.Parallel()
	f := newFixture(&fakeGenerator{json: devotionalJSON})
	f.keeper.cacheErr = fmt.Errorf("%w: disk full", apperrors.ErrPersistence)

	out, err := f.uc.Devotional(context.Background(), "01-11")
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Equal(t, "Descanso", out.Title)
}

func TestDownloadLifecycle(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{}
	f := newFixture(gen)
	ctx := context.Background()

	_, err := f.uc.Download(ctx, "01-05")
	assert.ErrorIs(t, err, apperrors.ErrGenerationUnavailable)
	assert.Empty(t, f.cache.items)

	gen.mu.Lock()
	gen.text = "1 No princípio"
	gen.mu.Unlock()
	downloaded, err := f.uc.Download(ctx, "01-05")
	require.NoError(t, err)
	assert.Equal(t, domain.OfflineKey("ARC", "Gênesis 1-4"), downloaded.Key)

	calls := gen.calls()
	out, err := f.uc.OpenReading(ctx, dto.OpenReadingInput{DateKey: "01-05"})
	require.NoError(t, err)
	assert.True(t, out.Cached)
	assert.Equal(t, calls, gen.calls())

	list, err := f.uc.Downloads(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Gênesis 1-4", list[0].Reference)

	removed, err := f.uc.RemoveDownload(ctx, "01-05")
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = f.uc.Download(ctx, "01-06")
	require.NoError(t, err)
	cleared, err := f.uc.ClearDownloads(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)

	_, err = f.uc.Download(ctx, "01-11")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPhraseAndMessiahFallbacks(t *testing.T) {
	t.Parallel()
	f := newFixture(&fakeGenerator{})
	ctx := context.Background()

	phrase, err := f.uc.Phrase(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, domain.PhraseFallback, phrase.Phrase)
	assert.Equal(t, "No Princípio", phrase.Theme)

	messiah, err := f.uc.Messiah(ctx, "01-07")
	require.NoError(t, err)
	assert.Equal(t, domain.MessianicFallback, messiah.Text)
	assert.Equal(t, "Gênesis 9-11", messiah.Reading)

	_, err = f.uc.Messiah(ctx, "01-11")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestLookupTerm(t *testing.T) {
	t.Parallel()
	f := newFixture(&fakeGenerator{})
	_, err := f.uc.LookupTerm(context.Background(), "Graça")
	assert.ErrorIs(t, err, apperrors.ErrGenerationUnavailable)
	_, err = f.uc.LookupTerm(context.Background(), " ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	ok := newFixture(&fakeGenerator{json: `{"term":"Graça","definition":"Favor imerecido."}`})
	term, err := ok.uc.LookupTerm(context.Background(), "Graça")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(term.Definition, "Favor"))
}
