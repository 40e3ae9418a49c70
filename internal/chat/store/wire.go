package store

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/Tanjamul-Azad/Complete-Legal-Aid/internal/chat"
)

// wireMessage is the chat-messages record as the platform API ships it.
type wireMessage struct {
	MessageID  int64   `json:"message_id"`
	Case       *string `json:"case,omitempty"`
	Sender     string  `json:"sender"`
	Receiver   *string `json:"receiver,omitempty"`
	Text       string  `json:"message_text"`
	Attachment *string `json:"attachment,omitempty"`
	SentAt     string  `json:"sent_at"`
	IsRead     bool    `json:"is_read"`
}

// messagePage is the paginated list envelope some deployments return.
type messagePage struct {
	Results []wireMessage `json:"results"`
}

type wireUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type sendPayload struct {
	Text       string `json:"message_text"`
	Receiver   string `json:"receiver"`
	Case       string `json:"case,omitempty"`
	Attachment string `json:"attachment,omitempty"`
}

type readPayload struct {
	IsRead bool `json:"is_read"`
}

func (w wireMessage) toMessage() chat.Message {
	msg := chat.Message{
		ID:       strconv.FormatInt(w.MessageID, 10),
		SenderID: w.Sender,
		Text:     w.Text,
		Read:     w.IsRead,
	}
	// Absent receiver maps to an empty ID; derivation drops the record.
	if w.Receiver != nil {
		msg.ReceiverID = *w.Receiver
	}
	if w.Case != nil {
		msg.CaseID = *w.Case
	}
	if ts, err := time.Parse(time.RFC3339, w.SentAt); err == nil {
		msg.Timestamp = ts.UnixMilli()
	}
	return msg
}

func (w wireUser) toUser() chat.User {
	return chat.User{ID: w.ID, Name: w.Name, Avatar: w.Avatar}
}

// decodeMessageList accepts either a bare JSON array or a paginated
// {"results": [...]} envelope.
func decodeMessageList(body []byte) ([]wireMessage, error) {
	var list []wireMessage
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var page messagePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}
