package debate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/logosbot/logos/internal/debate"
	"github.com/logosbot/logos/internal/discord"
)

const selfID = "logos-bot"

func msg(id, author string) discord.Message {
	return discord.Message{ID: id, AuthorID: author, AuthorName: author, Content: "text"}
}

func TestPreviousAuthor(t *testing.T) {
	tests := []struct {
		name     string
		messages []discord.Message
		want     string
	}{
		{
			name:     "newest non-bot author wins",
			messages: []discord.Message{msg("3", "alice"), msg("2", "bob"), msg("1", "alice")},
			want:     "alice",
		},
		{
			name:     "bot messages are skipped",
			messages: []discord.Message{msg("3", selfID), msg("2", "bob"), msg("1", "alice")},
			want:     "bob",
		},
		{
			name:     "only bot messages yields sentinel",
			messages: []discord.Message{msg("2", selfID), msg("1", selfID)},
			want:     selfID,
		},
		{
			name:     "empty history yields sentinel",
			messages: nil,
			want:     selfID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, debate.PreviousAuthor(tt.messages, selfID))
		})
	}
}
