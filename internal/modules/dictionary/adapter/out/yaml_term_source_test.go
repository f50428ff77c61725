package out_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dictionaryout "jornada/internal/modules/dictionary/adapter/out"
	"jornada/internal/modules/dictionary/domain"
)

func TestEmbeddedDictionaryLoads(t *testing.T) {
	t.Parallel()
	terms, err := dictionaryout.NewEmbeddedTermSource().Load(context.Background())
	require.NoError(t, err)
	require.Len(t, terms, 10)

	dict, err := domain.NewDictionary(terms)
	require.NoError(t, err)
	patriarchs, ok := dict.Find("Patriarcas")
	require.True(t, ok)
	assert.Contains(t, patriarchs.Definition, "Abraão, Isaque e Jacó")
	messiah, ok := dict.Find("Messias")
	require.True(t, ok)
	assert.Contains(t, messiah.Definition, "'O Ungido'")
}

func TestYAMLTermSourceRejectsMalformedInput(t *testing.T) {
	t.Parallel()
	_, err := dictionaryout.NewYAMLTermSource([]byte("term: [unterminated")).Load(context.Background())
	assert.Error(t, err)
}
