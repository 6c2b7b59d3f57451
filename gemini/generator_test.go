package gemini_test

import (
	"context"
	"testing"

	"github.com/harshydav08/sitechat"
	"github.com/harshydav08/sitechat/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Generator implements sitechat.Generator at compile time.
var _ sitechat.Generator = (*gemini.Generator)(nil)

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("sets temperature and max tokens", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(sitechat.GenerateOptions{Temperature: 0.7, MaxTokens: 512})

		require.NotNil(t, config.Temperature)
		assert.InDelta(t, 0.7, *config.Temperature, 0.001)
		assert.EqualValues(t, 512, config.MaxOutputTokens)
	})

	t.Run("leaves zero values unset", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(sitechat.GenerateOptions{})

		assert.Nil(t, config.Temperature)
		assert.Zero(t, config.MaxOutputTokens)
	})
}

func TestGenerator_Model(t *testing.T) {
	t.Parallel()

	assert.Equal(t, gemini.DefaultModel, gemini.NewGenerator(nil, "").Model())
	assert.Equal(t, "gemini-2.0-flash", gemini.NewGenerator(nil, "gemini-2.0-flash").Model())
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("returns response text", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{generateText: "Paris is the capital of France."}
		gen := gemini.NewGenerator(newClient(t, api), "")

		text, err := gen.Generate(context.Background(), "Question: capital?", sitechat.GenerateOptions{Temperature: 0.7})

		require.NoError(t, err)
		assert.Equal(t, "Paris is the capital of France.", text)
		assert.Equal(t, "Question: capital?", api.lastPrompt.Load())
	})

	t.Run("returns API errors", func(t *testing.T) {
		t.Parallel()

		gen := gemini.NewGenerator(newClient(t, &fakeAPI{fail: true}), "")

		_, err := gen.Generate(context.Background(), "prompt", sitechat.GenerateOptions{})

		require.Error(t, err)
	})

	t.Run("rejects empty prompt", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewGenerator(nil, "").Generate(context.Background(), "", sitechat.GenerateOptions{})

		require.Error(t, err)
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})
}
