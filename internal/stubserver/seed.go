package stubserver

import "time"

// SeedDemo loads a small legal-aid scenario: a client with an unread
// question from their lawyer and an older closed thread with a second
// lawyer.
func SeedDemo(store *MessageStore) {
	now := time.Now().UTC()
	stamp := func(d time.Duration) string {
		return now.Add(-d).Format(time.RFC3339)
	}
	caseID := "case-1042"

	users := []User{
		{ID: "client-7", Name: "Nadia Hossain"},
		{ID: "lawyer-3", Name: "Adv. Farhan Chowdhury"},
		{ID: "lawyer-5", Name: "Adv. Shirin Akter"},
	}

	messages := []Record{
		{Sender: "client-7", Receiver: ptr("lawyer-5"), Case: &caseID,
			Text: "Thank you for closing the tenancy dispute.", SentAt: stamp(72 * time.Hour), IsRead: true},
		{Sender: "lawyer-5", Receiver: ptr("client-7"), Case: &caseID,
			Text: "You are welcome. Keep the signed copy safe.", SentAt: stamp(71 * time.Hour), IsRead: true},
		{Sender: "lawyer-3", Receiver: ptr("client-7"), Case: &caseID,
			Text: "I reviewed your documents. Can we talk tomorrow?", SentAt: stamp(2 * time.Hour)},
		{Sender: "lawyer-3", Receiver: ptr("client-7"), Case: &caseID,
			Text: "Please also bring the rent receipts.", SentAt: stamp(90 * time.Minute)},
	}

	store.Seed(users, messages)
}

func ptr(s string) *string { return &s }
