package chat

import "sort"

// DeriveConversations folds a flat message collection into per-peer
// conversations for the current user, newest activity first.
//
// The fold walks messages in timestamp-descending order (stable on
// ties), so the first message seen for a peer is that conversation's
// preview while every qualifying message in the history still bumps the
// unread counter. Peers that resolve against neither the directory nor
// the hint produce no conversation at all, and a peer equal to the
// current user is skipped outright.
//
// The result order is first-seen order of the sorted input, which is
// exactly last-message-timestamp descending; callers do not re-sort.
func DeriveConversations(messages []Message, current User, dir Directory, hint *User) []Conversation {
	if len(messages) == 0 {
		return nil
	}

	sorted := make([]Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})

	order := make([]string, 0, 8)
	byPeer := make(map[string]*Conversation, 8)

	for _, msg := range sorted {
		if msg.SenderID != current.ID && msg.ReceiverID != current.ID {
			continue
		}
		peerID := msg.PeerID(current.ID)
		if peerID == current.ID {
			continue
		}

		peer, ok := dir.Lookup(peerID)
		if !ok {
			if hint == nil || hint.ID != peerID {
				continue
			}
			peer = *hint
		}

		conv := byPeer[peerID]
		if conv == nil {
			conv = &Conversation{Peer: peer, LastMessage: msg}
			byPeer[peerID] = conv
			order = append(order, peerID)
		}
		if msg.unreadFor(current.ID) {
			conv.Unread++
		}
	}

	out := make([]Conversation, 0, len(order))
	for _, peerID := range order {
		out = append(out, *byPeer[peerID])
	}
	return out
}

// EnsurePeer guarantees a conversation entry for peer, prepending an
// empty one when no history with them exists yet. Used when the widget
// opens on an externally chosen user who has never been messaged.
func EnsurePeer(convs []Conversation, peer User) []Conversation {
	if peer.ID == "" {
		return convs
	}
	for _, conv := range convs {
		if conv.Peer.ID == peer.ID {
			return convs
		}
	}
	out := make([]Conversation, 0, len(convs)+1)
	out = append(out, Conversation{Peer: peer})
	return append(out, convs...)
}
