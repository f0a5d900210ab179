package fs

import (
	"bytes"
	"context"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/pact/model"
)

func TestLog_AppendAndEntries(t *testing.T) {
	ctx := context.Background()
	baseDir := t.TempDir()

	aLog, err := New(baseDir)
	assert.NoError(t, err)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []*model.Entry{
		{ID: "e1", NegotiationID: "n1", Actor: "pedro", Timestamp: base},
		{ID: "e2", NegotiationID: "n1", Actor: "pablo", Timestamp: base.Add(time.Minute)},
	}
	for _, entry := range entries {
		assert.NoError(t, aLog.Append(ctx, entry))
	}

	recent, err := aLog.Entries(ctx, "n1", true)
	assert.NoError(t, err)
	if assert.Len(t, recent, 2) {
		assert.Equal(t, "e2", recent[0].ID)
		assert.Equal(t, "e1", recent[1].ID)
	}

	oldest, err := aLog.Entries(ctx, "n1", false)
	assert.NoError(t, err)
	if assert.Len(t, oldest, 2) {
		assert.Equal(t, "e1", oldest[0].ID)
	}

	none, err := aLog.Entries(ctx, "unknown", true)
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestLog_SkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	baseDir := t.TempDir()

	aLog, err := New(baseDir)
	assert.NoError(t, err)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, aLog.Append(ctx, &model.Entry{ID: "e1", NegotiationID: "n1", Actor: "pedro", Timestamp: base}))

	// plant an undecodable entry file next to the valid one
	fileService := afs.New()
	corrupt := path.Join(baseDir, "n1", "00000000000000000000-corrupt.json")
	assert.NoError(t, fileService.Upload(ctx, corrupt, file.DefaultFileOsMode, bytes.NewReader([]byte("{not json"))))

	entries, err := aLog.Entries(ctx, "n1", true)
	assert.NoError(t, err)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "e1", entries[0].ID)
	}
}
