package post

import (
	"database/sql"
	"testing"
	"time"
)

func TestIsPubliclyVisible(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		post Post
		want bool
	}{
		{"published", Post{Status: StatusPublished}, true},
		{"published but hidden", Post{Status: StatusPublished, Hidden: true}, false},
		{"draft", Post{Status: StatusDraft}, false},
		{"draft hidden", Post{Status: StatusDraft, Hidden: true}, false},
		{
			"scheduled and due",
			Post{Status: StatusScheduled, ScheduledAt: sql.NullTime{Time: now.Add(-time.Hour), Valid: true}},
			true,
		},
		{
			"scheduled in the future",
			Post{Status: StatusScheduled, ScheduledAt: sql.NullTime{Time: now.Add(time.Hour), Valid: true}},
			false,
		},
		{
			"scheduled and due but hidden",
			Post{Status: StatusScheduled, ScheduledAt: sql.NullTime{Time: now.Add(-time.Hour), Valid: true}, Hidden: true},
			false,
		},
		{"scheduled without a time", Post{Status: StatusScheduled}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.post.IsPubliclyVisible(now); got != tc.want {
				t.Fatalf("IsPubliclyVisible() = %v, want %v", got, tc.want)
			}
		})
	}
}
