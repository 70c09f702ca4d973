package remote

import "errors"

const (
	ChatFallback    = "Bot: Error occurred, please try again."
	NewsFailed      = "Failed to load news."
	NewsEmpty       = "No recent news available."
	CatalogFallback = "Could not load planet data."
	ChatThinking    = "Bot is thinking..."
)

// ChatReply is the line shown for a chat result.
func ChatReply(text string, err error) string {
	if err != nil {
		return ChatFallback
	}
	return "Bot: " + text
}

// NewsText is the news panel body for a feed result.
func NewsText(ev CMEEvent, err error) string {
	switch {
	case errors.Is(err, ErrNoEvents):
		return NewsEmpty
	case err != nil:
		return NewsFailed
	}
	return ev.Summary()
}
