package debate

import "github.com/logosbot/logos/internal/discord"

// PreviousAuthor returns the author ID of the most recent non-bot
// message in a newest-first history. When no participant has posted yet
// it returns selfID as a sentinel, so the first message from either
// participant is never flagged as a turn violation.
func PreviousAuthor(messages []discord.Message, selfID string) string {
	for _, m := range messages {
		if m.AuthorID != selfID {
			return m.AuthorID
		}
	}
	return selfID
}
