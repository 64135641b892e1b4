package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/inboxdigest/internal/gmail"
	"github.com/teemow/inboxdigest/internal/scorer"
)

func item(id string, priority int) ScoredEmail {
	return ScoredEmail{
		Email: gmail.Email{ID: id, Sender: "someone@example.com", Subject: "subject " + id},
		Score: scorer.Score{Priority: priority, Reason: "because"},
	}
}

func TestCombine(t *testing.T) {
	emails := []gmail.Email{{ID: "a"}, {ID: "b"}}
	scores := []scorer.Score{{Priority: 2}, {Priority: 5}}

	items, err := Combine(emails, scores)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 2, items[0].Score.Priority)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, 5, items[1].Score.Priority)
}

func TestCombineLengthMismatch(t *testing.T) {
	_, err := Combine([]gmail.Email{{ID: "a"}}, nil)
	require.Error(t, err)
}

func TestSortDescendingPriority(t *testing.T) {
	items := []ScoredEmail{item("a", 2), item("b", 5), item("c", 1), item("d", 4)}

	Sort(items)

	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.ID
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, got)
}

func TestSortStableForEqualPriorities(t *testing.T) {
	// Emails with the same priority must keep their mailbox order.
	items := []ScoredEmail{item("a", 3), item("b", 5), item("c", 3), item("d", 3)}

	Sort(items)

	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.ID
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, got)
}

func TestRender(t *testing.T) {
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	items := []ScoredEmail{
		{
			Email: gmail.Email{ID: "m1", Sender: "boss@example.com", Subject: "Budget review"},
			Score: scorer.Score{Priority: 5, Reason: "direct request from your manager", ActionNeeded: true},
		},
		{
			Email: gmail.Email{ID: "m2", Sender: "news@example.com", Subject: "Weekly roundup"},
			Score: scorer.Score{Priority: 1, Reason: "newsletter"},
		},
	}

	text := Render(items, now)

	assert.Contains(t, text, "Fri, 15 Mar 2024")
	assert.Contains(t, text, "2 unread")
	assert.Contains(t, text, "🔴 *P5* <https://mail.google.com/mail/u/0/#all/m1|Budget review>")
	assert.Contains(t, text, "⚡ _action needed_")
	assert.Contains(t, text, "⚪ *P1* <https://mail.google.com/mail/u/0/#all/m2|Weekly roundup>")
	assert.Contains(t, text, "from news@example.com: _newsletter_")

	// The urgent entry comes before the newsletter.
	assert.Less(t, strings.Index(text, "Budget review"), strings.Index(text, "Weekly roundup"))
}

func TestRenderEmpty(t *testing.T) {
	text := Render(nil, time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC))

	assert.Contains(t, text, "Inbox digest")
	assert.Contains(t, text, "No unread emails")
	assert.NotContains(t, text, "*P")
}

func TestRenderEscapesMrkdwn(t *testing.T) {
	items := []ScoredEmail{
		{
			Email: gmail.Email{ID: "m1", Sender: "Jane <jane@example.com>", Subject: "Q1 <draft> & notes"},
			Score: scorer.Score{Priority: 3, Reason: "contains <tags>"},
		},
	}

	text := Render(items, time.Now())

	assert.Contains(t, text, "Q1 &lt;draft&gt; &amp; notes")
	assert.Contains(t, text, "Jane &lt;jane@example.com&gt;")
	assert.Contains(t, text, "_contains &lt;tags&gt;_")
}

func TestRenderUnknownPriorityFallsBackToNeutralEmoji(t *testing.T) {
	items := []ScoredEmail{
		{Email: gmail.Email{ID: "m1", Subject: "s"}, Score: scorer.Score{Priority: 7}},
	}

	assert.Contains(t, Render(items, time.Now()), "🔵 *P7*")
}
