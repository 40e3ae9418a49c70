package chat

import "strings"

// Directory is an already-loaded, insertion-ordered set of users.
// Lookups are by ID; when two entries share an ID the first one wins.
type Directory struct {
	users []User
	index map[string]int
}

func NewDirectory(users ...User) Directory {
	dir := Directory{
		users: make([]User, 0, len(users)),
		index: make(map[string]int, len(users)),
	}
	for _, user := range users {
		dir.Add(user)
	}
	return dir
}

// Add appends a user. Entries with a duplicate or blank ID are dropped.
func (d *Directory) Add(user User) {
	id := strings.TrimSpace(user.ID)
	if id == "" {
		return
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if _, ok := d.index[id]; ok {
		return
	}
	user.ID = id
	d.index[id] = len(d.users)
	d.users = append(d.users, user)
}

// Lookup resolves an ID against the directory.
func (d Directory) Lookup(id string) (User, bool) {
	pos, ok := d.index[id]
	if !ok {
		return User{}, false
	}
	return d.users[pos], true
}

func (d Directory) Len() int {
	return len(d.users)
}

// Users returns the entries in insertion order.
func (d Directory) Users() []User {
	out := make([]User, len(d.users))
	copy(out, d.users)
	return out
}
