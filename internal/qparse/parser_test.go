package qparse

import (
	"testing"

	"github.com/indigo-web/typedquery/kv"
	"github.com/stretchr/testify/require"
)

func parse(query string) *kv.Storage {
	result := kv.New()
	Parse(query, Into(result))
	return result
}

func TestParse(t *testing.T) {
	t.Run("single pair", func(t *testing.T) {
		result := parse("hello=world")
		require.Equal(t, 1, result.Len())
		require.Equal(t, "world", result.Value("hello"))
	})

	t.Run("two pairs", func(t *testing.T) {
		result := parse("hello=world&lorem=ipsum")
		require.Equal(t, "world", result.Value("hello"))
		require.Equal(t, "ipsum", result.Value("lorem"))
	})

	t.Run("duplicate keys keep order", func(t *testing.T) {
		result := parse("tag=first&other=hey&tag=second")
		require.Equal(t, []string{"first", "second"}, result.Values("tag"))
		require.Equal(t, []kv.Pair{
			{Key: "tag", Value: "first"},
			{Key: "other", Value: "hey"},
			{Key: "tag", Value: "second"},
		}, result.Expose())
	})

	t.Run("empty value", func(t *testing.T) {
		result := parse("hello=&another=pair")
		require.True(t, result.Has("hello"))
		require.Empty(t, result.Value("hello"))
	})

	t.Run("bare key", func(t *testing.T) {
		result := parse("flag&hello=world")
		require.True(t, result.Has("flag"))
		require.Empty(t, result.Value("flag"))
		require.Equal(t, "world", result.Value("hello"))
	})

	t.Run("empty key is skipped", func(t *testing.T) {
		result := parse("=world&hello=world")
		require.Equal(t, 1, result.Len())
		require.Equal(t, "world", result.Value("hello"))
	})

	t.Run("trailing and doubled ampersands", func(t *testing.T) {
		result := parse("hello=world&&lorem=ipsum&")
		require.Equal(t, 2, result.Len())
	})

	t.Run("percent-encoded", func(t *testing.T) {
		result := parse("greeting=hello%20world&plus=a+b")
		require.Equal(t, "hello world", result.Value("greeting"))
		require.Equal(t, "a b", result.Value("plus"))
	})

	t.Run("malformed escape is kept literally", func(t *testing.T) {
		result := parse("broken=%zz&tail=%2")
		require.Equal(t, "%zz", result.Value("broken"))
		require.Equal(t, "%2", result.Value("tail"))
	})

	t.Run("empty input", func(t *testing.T) {
		require.True(t, parse("").Empty())
	})
}

func TestEncode(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		pairs := []kv.Pair{
			{Key: "hello", Value: "world"},
			{Key: "lorem", Value: "ipsum"},
		}
		require.Equal(t, "hello=world&lorem=ipsum", Encode(pairs))
	})

	t.Run("escaping", func(t *testing.T) {
		pairs := []kv.Pair{
			{Key: "greeting", Value: "hello world"},
			{Key: "expr", Value: "a&b=c"},
		}
		require.Equal(t, "greeting=hello+world&expr=a%26b%3Dc", Encode(pairs))
	})

	t.Run("roundtrip", func(t *testing.T) {
		pairs := []kv.Pair{
			{Key: "tag", Value: "first second"},
			{Key: "other", Value: "hey"},
			{Key: "tag", Value: "=&%"},
		}
		require.Equal(t, pairs, parse(Encode(pairs)).Expose())
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, Encode(nil))
	})
}
