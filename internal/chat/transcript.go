package chat

import (
	"sort"
	"time"
)

// Transcript filters the collection to the bidirectional pair
// (currentID <-> peerID), oldest first for natural reading order. The
// sort runs against the source collection directly; it never reuses the
// newest-first ordering the conversation fold needs.
func Transcript(messages []Message, currentID, peerID string) []Message {
	if peerID == "" {
		return nil
	}
	out := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if (msg.SenderID == currentID && msg.ReceiverID == peerID) ||
			(msg.SenderID == peerID && msg.ReceiverID == currentID) {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// Segment is a run of consecutive transcript messages sharing a
// calendar day, labeled for the day separator above it.
type Segment struct {
	Label    string
	Messages []Message
}

// Segments groups an already-ordered transcript by calendar day in loc,
// labeling each group relative to now. Labels are recomputed at render
// time: yesterday's "Today" separator must read "Yesterday" today.
func Segments(transcript []Message, now time.Time, loc *time.Location) []Segment {
	if loc == nil {
		loc = time.Local
	}
	var out []Segment
	var day time.Time
	for _, msg := range transcript {
		msgDay := startOfDay(msg.Time(loc))
		if len(out) == 0 || !msgDay.Equal(day) {
			day = msgDay
			out = append(out, Segment{Label: DayLabel(msg.Timestamp, now, loc)})
		}
		last := &out[len(out)-1]
		last.Messages = append(last.Messages, msg)
	}
	return out
}

// DayLabel renders a day separator for the given timestamp: "Today",
// "Yesterday", or a full month-day-year date for anything earlier.
func DayLabel(timestamp int64, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	day := startOfDay(time.UnixMilli(timestamp).In(loc))
	today := startOfDay(now.In(loc))
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return day.Format("January 2, 2006")
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
