package builders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
)

func seedOrg(t *testing.T, ctx context.Context, bc *Context) {
	t.Helper()
	_, _, err := Organization(ctx, bc, fixtures.OrganizationDef{
		Name: "Sun Hollow Kennel", Email: "hello@sunhollow.example.com",
	}, 0)
	require.Nil(t, err)
}

func TestThreadMessageTimestampsRelativeToRunStart(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)
	seedOrg(t, ctx, bc)

	def := fixtures.ThreadDef{
		Subject:     "Puppy availability",
		InquiryType: "listing",
		From:        fixtures.FromDef{Shopper: "jordan@example.com"},
		Messages: []fixtures.MessageDef{
			{Direction: "inbound", DaysAgo: 3, Body: "Is the litter still available?"},
			{Direction: "outbound", DaysAgo: 2, HoursAgo: 4, Body: "Yes, two spots left."},
		},
	}
	threadID, out, err := Thread(ctx, bc, def)
	require.Nil(t, err)
	require.Equal(t, OutcomeCreated, out)

	msgs := store.ThreadMessages(threadID)
	require.Len(t, msgs, 2)
	assert.Equal(t, bc.Now.Add(-3*24*time.Hour), msgs[0].SentAt)
	assert.Equal(t, bc.Now.Add(-2*24*time.Hour-4*time.Hour), msgs[1].SentAt)

	thread, gerr := store.GetThreadBySubject(ctx, bc.TenantID, "Puppy availability (dev)")
	require.Nil(t, gerr)
	assert.Equal(t, msgs[1].SentAt, thread.LastMessageAt, "last message timestamp wins")
}

func TestThreadSenderFollowsDirection(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)
	seedOrg(t, ctx, bc)

	contact := fixtures.ContactDef{Name: "Avery Chen", Email: "avery@example.com"}
	_, _, err := Contact(ctx, bc, contact, 0)
	require.Nil(t, err)

	def := fixtures.ThreadDef{
		Subject:     "Waitlist question",
		InquiryType: "waitlist",
		From:        fixtures.FromDef{Contact: "avery@example.com"},
		Messages: []fixtures.MessageDef{
			{Direction: "inbound", DaysAgo: 1, Body: "Where am I on the list?"},
			{Direction: "outbound", HoursAgo: 20, Body: "Position two."},
		},
	}
	threadID, _, terr := Thread(ctx, bc, def)
	require.Nil(t, terr)

	msgs := store.ThreadMessages(threadID)
	require.Len(t, msgs, 2)
	assert.NotEqual(t, msgs[0].SenderPartyID, msgs[1].SenderPartyID)
}

func TestThreadIdempotentBySubject(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)
	seedOrg(t, ctx, bc)

	def := fixtures.ThreadDef{
		Subject:     "Stud inquiry",
		InquiryType: "breeding",
		From:        fixtures.FromDef{Shopper: "jordan@example.com"},
		Messages:    []fixtures.MessageDef{{Direction: "inbound", DaysAgo: 5, Body: "Hello"}},
	}
	id1, out1, err := Thread(ctx, bc, def)
	require.Nil(t, err)
	require.Equal(t, OutcomeCreated, out1)

	created := store.TotalCreated()
	id2, out2, err := Thread(ctx, bc, def)
	require.Nil(t, err)
	assert.Equal(t, OutcomeExisted, out2)
	assert.Equal(t, id1, id2)
	assert.Equal(t, created, store.TotalCreated(), "messages must not duplicate on re-run")
}

func TestDraftUnresolvedRecipientDowngradesToUnaddressed(t *testing.T) {
	ctx := context.Background()
	bc, store := newTestContext(t)

	id, out, err := Draft(ctx, bc, fixtures.DraftDef{
		To: "ghost@example.com", Channel: "email",
		Subject: "Follow up", Body: "Checking in.",
	})
	require.Nil(t, err)
	assert.Equal(t, OutcomeCreated, out)

	draft, gerr := store.GetDraftBySubject(ctx, bc.TenantID, "Follow up (dev)")
	require.Nil(t, gerr)
	assert.Equal(t, id, draft.DraftID)
	assert.False(t, draft.RecipientPartyID.Valid)
}
