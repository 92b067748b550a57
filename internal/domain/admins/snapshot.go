package admins

import (
	"sort"
	"strings"
)

// Snapshot is an immutable set of admin emails. Share it freely.
type Snapshot struct {
	emails map[string]struct{}
}

// NewSnapshot normalises and de-duplicates emails.
func NewSnapshot(emails ...string) Snapshot {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return Snapshot{emails: set}
}

func (s Snapshot) Contains(email string) bool {
	_, ok := s.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

func (s Snapshot) Len() int { return len(s.emails) }

// Emails returns a sorted copy.
func (s Snapshot) Emails() []string {
	out := make([]string, 0, len(s.emails))
	for e := range s.emails {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}
