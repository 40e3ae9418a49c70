package chat

// UnreadConversations counts conversations with unread activity. The
// header badge surfaces "N unread threads", not a message total, so
// this is a distinct-peer count rather than a sum.
func UnreadConversations(convs []Conversation) int {
	n := 0
	for _, conv := range convs {
		if conv.Unread > 0 {
			n++
		}
	}
	return n
}

// MarkConversationRead flips the read flag on every message from peerID
// addressed to currentID. The input is never mutated; the returned
// slice replaces the owned collection and changed carries the IDs whose
// flag flipped, for the store's persist path. Calling it again with no
// new messages returns an equal collection and no changed IDs.
func MarkConversationRead(messages []Message, currentID, peerID string) (out []Message, changed []string) {
	return markRead(messages, func(m Message) bool {
		return m.SenderID == peerID && m.unreadFor(currentID)
	})
}

// MarkAllRead applies the same transition across every peer.
func MarkAllRead(messages []Message, currentID string) (out []Message, changed []string) {
	return markRead(messages, func(m Message) bool {
		return m.unreadFor(currentID)
	})
}

func markRead(messages []Message, match func(Message) bool) (out []Message, changed []string) {
	out = make([]Message, len(messages))
	copy(out, messages)
	for i := range out {
		if match(out[i]) {
			out[i].Read = true
			changed = append(changed, out[i].ID)
		}
	}
	return out, changed
}
