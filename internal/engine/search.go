package engine

import (
	"strings"

	"ember-chat/internal/domain"
)

// SearchResult is one chat's matches for a query.
type SearchResult struct {
	Chat     domain.Chat
	Messages []domain.Message
}

// SearchMessages matches the query case-insensitively against message
// text and sender names across all chats, grouped by chat in chat-list
// order. Tombstones are excluded. Read-only.
func (e *Engine) SearchMessages(query string) []SearchResult {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	var results []SearchResult
	for _, c := range e.chats {
		var matches []domain.Message
		for _, m := range e.messageListLocked(c.ID) {
			if m.IsDeleted {
				continue
			}
			if strings.Contains(strings.ToLower(m.Payload.Plain()), needle) ||
				strings.Contains(strings.ToLower(m.SenderName), needle) {
				matches = append(matches, m)
			}
		}
		if len(matches) > 0 {
			results = append(results, SearchResult{Chat: c.Clone(), Messages: matches})
		}
	}
	return results
}
