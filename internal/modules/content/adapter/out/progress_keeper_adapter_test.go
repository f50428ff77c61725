package out_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentout "jornada/internal/modules/content/adapter/out"
	"jornada/internal/modules/content/domain"
	progressdto "jornada/internal/modules/progress/dto"
	progressin "jornada/internal/modules/progress/port/in"
	apperrors "jornada/internal/platform/errors"
)

type fakeProgress struct {
	progressin.Usecase
	onboarded  bool
	version    string
	lastViewed string
	saved      map[string]progressdto.DevotionalOutput
}

func (f *fakeProgress) Load(context.Context) (progressdto.ProgressOutput, error) {
	if !f.onboarded {
		return progressdto.ProgressOutput{}, apperrors.ErrNoProgress
	}
	return progressdto.ProgressOutput{Version: f.version}, nil
}

func (f *fakeProgress) SetLastViewed(_ context.Context, key string) error {
	if !f.onboarded {
		return apperrors.ErrNoProgress
	}
	f.lastViewed = key
	return nil
}

func (f *fakeProgress) SavedDevotional(_ context.Context, key string) (progressdto.DevotionalOutput, bool, error) {
	if !f.onboarded {
		return progressdto.DevotionalOutput{}, false, apperrors.ErrNoProgress
	}
	d, ok := f.saved[key]
	return d, ok, nil
}

func (f *fakeProgress) CacheDevotional(_ context.Context, key string, d progressdto.DevotionalOutput) error {
	if !f.onboarded {
		return apperrors.ErrNoProgress
	}
	f.saved[key] = d
	return nil
}

func TestProgressKeeperBeforeOnboarding(t *testing.T) {
	t.Parallel()
	keeper := contentout.NewProgressKeeperAdapter(&fakeProgress{})
	ctx := context.Background()

	edition, err := keeper.Edition(ctx)
	require.NoError(t, err)
	assert.Equal(t, contentout.DefaultEdition, edition)
	require.NoError(t, keeper.SetLastViewed(ctx, "01-05"))
	_, ok, err := keeper.SavedDevotional(ctx, "01-11")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, keeper.CacheDevotional(ctx, "01-11", domain.Devotional{Title: "t"}), apperrors.ErrNoProgress)
}

func TestProgressKeeperRoundTripsDevotional(t *testing.T) {
	t.Parallel()
	progress := &fakeProgress{onboarded: true, version: "SCOFIELD", saved: map[string]progressdto.DevotionalOutput{}}
	keeper := contentout.NewProgressKeeperAdapter(progress)
	ctx := context.Background()

	edition, err := keeper.Edition(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SCOFIELD", edition)

	want := domain.Devotional{Title: "t", Verse: "v", Reflection: "r", PracticalPoints: []string{"a"}, Prayer: "p"}
	require.NoError(t, keeper.CacheDevotional(ctx, "01-11", want))
	got, ok, err := keeper.SavedDevotional(ctx, "01-11")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, keeper.SetLastViewed(ctx, "01-05"))
	assert.Equal(t, "01-05", progress.lastViewed)
}
