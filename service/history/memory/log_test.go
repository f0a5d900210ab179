package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/pact/model"
	"github.com/viant/pact/service/dao"
	"github.com/viant/pact/service/history"
)

func entryAt(id, actor string, at time.Time) *model.Entry {
	return &model.Entry{
		ID:            id,
		NegotiationID: "n1",
		Actor:         actor,
		Timestamp:     at,
	}
}

func TestLog_Ordering(t *testing.T) {
	ctx := context.Background()
	aLog := New()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, aLog.Append(ctx, entryAt("e1", "pedro", base)))
	assert.NoError(t, aLog.Append(ctx, entryAt("e2", "pablo", base.Add(time.Minute))))
	assert.NoError(t, aLog.Append(ctx, entryAt("e3", "pedro", base.Add(2*time.Minute))))

	recent, err := aLog.Entries(ctx, "n1", true)
	assert.NoError(t, err)
	oldest, err := aLog.Entries(ctx, "n1", false)
	assert.NoError(t, err)

	assert.Equal(t, []string{"e3", "e2", "e1"}, ids(recent))
	assert.Equal(t, []string{"e1", "e2", "e3"}, ids(oldest))

	// recent-first reversed equals oldest-first
	for i := range oldest {
		assert.Equal(t, oldest[i].ID, recent[len(recent)-1-i].ID)
	}
}

func TestLog_EntriesAreImmutable(t *testing.T) {
	ctx := context.Background()
	aLog := New()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	source := entryAt("e1", "pedro", base)
	assert.NoError(t, aLog.Append(ctx, source))

	// mutating the appended value must not affect the stored entry
	source.Actor = "intruder"

	entries, err := aLog.Entries(ctx, "n1", true)
	assert.NoError(t, err)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "pedro", entries[0].Actor)
	}

	// nor must mutating a returned entry
	entries[0].Notes = "tampered"
	again, err := aLog.Entries(ctx, "n1", true)
	assert.NoError(t, err)
	assert.Equal(t, "", again[0].Notes)
}

func TestLog_LastFrom(t *testing.T) {
	ctx := context.Background()
	aLog := New()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, aLog.Append(ctx, entryAt("e1", "pedro", base)))
	assert.NoError(t, aLog.Append(ctx, entryAt("e2", "pablo", base.Add(time.Minute))))
	assert.NoError(t, aLog.Append(ctx, entryAt("e3", "pedro", base.Add(2*time.Minute))))

	recent, err := aLog.Entries(ctx, "n1", true)
	assert.NoError(t, err)

	clientLast := history.LastFrom(recent, model.NewParty("", "pedro", "juan"))
	if assert.NotNil(t, clientLast) {
		assert.Equal(t, "e3", clientLast.ID)
	}
	sellerLast := history.LastFrom(recent, model.NewParty("", "pablo"))
	if assert.NotNil(t, sellerLast) {
		assert.Equal(t, "e2", sellerLast.ID)
	}
	assert.Nil(t, history.LastFrom(recent, model.NewParty("", "stranger")))
}

func TestLog_Validation(t *testing.T) {
	ctx := context.Background()
	aLog := New()

	assert.ErrorIs(t, aLog.Append(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, aLog.Append(ctx, &model.Entry{ID: "e1"}), dao.ErrInvalidID)

	entries, err := aLog.Entries(ctx, "unknown", true)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func ids(entries []*model.Entry) []string {
	ret := make([]string, 0, len(entries))
	for _, entry := range entries {
		ret = append(ret, entry.ID)
	}
	return ret
}
