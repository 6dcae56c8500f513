package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b", "b"}, "b"))
	require.Equal(t, -1, FindIndex([]int{1, 2}, 3))
}

func TestSplitConfigString(t *testing.T) {
	require.Equal(t, map[string]string{"": "ziqi", "depth": "2", "fast": ""}, SplitConfigString("ziqi, depth=2,fast"))
	require.Equal(t, map[string]string{"depth": "2"}, SplitConfigString("depth=2"))
	require.Empty(t, SplitConfigString(""))
}

func TestPopParamOr(t *testing.T) {
	t.Run("parses and removes present keys", func(t *testing.T) {
		params := map[string]string{"depth": "3", "trigger": "0.25", "fast": ""}

		depth, err := PopParamOr(params, "depth", 1)
		require.NoError(t, err)
		require.Equal(t, 3, depth)

		trigger, err := PopParamOr(params, "trigger", 0.5)
		require.NoError(t, err)
		require.Equal(t, 0.25, trigger)

		fast, err := PopParamOr(params, "fast", false)
		require.NoError(t, err)
		require.True(t, fast)

		require.Empty(t, params)
	})

	t.Run("falls back to the default", func(t *testing.T) {
		depth, err := PopParamOr(map[string]string{}, "depth", 4)
		require.NoError(t, err)
		require.Equal(t, 4, depth)
	})

	t.Run("reports malformed values", func(t *testing.T) {
		_, err := PopParamOr(map[string]string{"depth": "x"}, "depth", 1)
		require.Error(t, err)
	})
}
