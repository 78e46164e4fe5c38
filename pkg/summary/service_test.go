package summary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_Summarize(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the generated text", func(t *testing.T) {
		// given
		client := &StubClient{Response: "Anna is making steady progress."}
		service := NewService(client)

		// when
		text := service.Summarize(ctx, "Anna", []string{"covered quadratic equations", "struggled with factoring"})

		// then
		assert.Equal(t, "Anna is making steady progress.", text)
	})

	t.Run("should include the student and all notes in the prompt", func(t *testing.T) {
		// given
		client := &StubClient{Response: "ok"}
		service := NewService(client)

		// when
		service.Summarize(ctx, "Anna", []string{"note one", "note two"})

		// then
		require.Len(t, client.Prompts, 1)
		assert.Contains(t, client.Prompts[0], "Anna")
		assert.Contains(t, client.Prompts[0], "note one; note two")
	})

	t.Run("should return a placeholder when generation fails", func(t *testing.T) {
		client := &StubClient{Err: errors.New("backend unavailable")}
		service := NewService(client)

		text := service.Summarize(ctx, "Anna", []string{"some note"})

		assert.Equal(t, "Error generating summary.", text)
	})

	t.Run("should return a placeholder when the model returns nothing", func(t *testing.T) {
		client := &StubClient{Response: ""}
		service := NewService(client)

		text := service.Summarize(ctx, "Anna", []string{"some note"})

		assert.Equal(t, "No summary generated.", text)
	})

	t.Run("should return a placeholder without a configured client", func(t *testing.T) {
		service := NewService(nil)

		text := service.Summarize(ctx, "Anna", []string{"some note"})

		assert.Equal(t, "Error generating summary.", text)
	})
}
