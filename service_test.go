package pact

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/pact/model"
	"github.com/viant/pact/service/event"
)

type quote struct {
	id      string
	creator string
	Amount  int    `json:"amount"`
	Item    string `json:"item"`
}

func (q *quote) ContentRef() model.ContentRef {
	return model.ContentRef{Kind: "quote", ID: q.id}
}

func (q *quote) Creator() string { return q.creator }

func (q *quote) Freeze() (interface{}, error) {
	return map[string]interface{}{"amount": q.Amount, "item": q.Item}, nil
}

func TestService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	srv, err := New()
	assert.Nil(t, err)
	srv.RegisterContentType("quote", reflect.TypeOf(quote{}))

	topics := make(chan string, 16)
	srv.Events().SetListener(func(anEvent *event.Event) {
		topics <- anEvent.Topic
	})

	aQuote := &quote{id: "q-1", creator: "alice", Amount: 1000, Item: "piano"}
	created, err := srv.Negotiate(ctx, aQuote, "alice", "bob", "I offer 1000")
	assert.Nil(t, err)
	if !assert.NotNil(t, created) {
		return
	}
	assert.Equal(t, model.StateNegotiating, created.State)
	assert.Equal(t, model.SideClient, created.TurnHolder)

	// negotiating the same quote again silently no-ops
	again, err := srv.Negotiate(ctx, aQuote, "alice", "bob", "")
	assert.Nil(t, err)
	assert.Nil(t, again)

	aQuote.Amount = 900
	assert.Nil(t, srv.Modify(ctx, created.ID, "alice", "actually 900"))

	aQuote.Amount = 950
	assert.Nil(t, srv.CounterPropose(ctx, created.ID, "bob", "meet me at 950"))

	status, err := srv.StatusFor(ctx, created.ID, "alice")
	assert.Nil(t, err)
	assert.Equal(t, "PENDING ACTION", status)

	assert.Nil(t, srv.Accept(ctx, created.ID, "alice", "deal"))

	current, err := srv.Negotiation(ctx, created.ID)
	assert.Nil(t, err)
	assert.True(t, current.IsAccepted())

	entries, err := srv.Entries(ctx, created.ID, false)
	assert.Nil(t, err)
	assert.Equal(t, 4, len(entries))

	// registered kinds decode into their typed form
	decoded, err := srv.DecodeSnapshot(ctx, entries[0])
	assert.Nil(t, err)
	initial, ok := decoded.(*quote)
	if assert.True(t, ok) {
		assert.Equal(t, 1000, initial.Amount)
		assert.Equal(t, "piano", initial.Item)
	}

	// alice's accept is the most recent entry, so she is the last updater
	// even though the turn stayed with the seller side
	lastUpdater, err := srv.LastUpdater(ctx, created.ID)
	assert.Nil(t, err)
	assert.Equal(t, "alice", lastUpdater.Actor)
	assert.Equal(t, model.SideClient, lastUpdater.Side)

	initiator, err := srv.Initiator(ctx, created.ID)
	assert.Nil(t, err)
	assert.Equal(t, "alice", initiator)

	expected := []string{
		event.TopicNegotiationCreated,
		event.TopicProposalModified,
		event.TopicProposalCountered,
		event.TopicNegotiationAccepted,
	}
	for _, topic := range expected {
		select {
		case actual := <-topics:
			assert.Equal(t, topic, actual)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %v event", topic)
		}
	}
}

func TestService_History(t *testing.T) {
	ctx := context.Background()
	srv, err := New()
	assert.Nil(t, err)

	aQuote := &quote{id: "q-2", creator: "alice", Amount: 100}
	created, err := srv.Negotiate(ctx, aQuote, "alice", "bob", "")
	assert.Nil(t, err)
	assert.Nil(t, srv.CounterPropose(ctx, created.ID, "bob", ""))

	var oldest []*model.Entry
	for entry, iterErr := range srv.History(ctx, created.ID, false) {
		assert.Nil(t, iterErr)
		oldest = append(oldest, entry)
	}
	var recent []*model.Entry
	for entry, iterErr := range srv.History(ctx, created.ID, true) {
		assert.Nil(t, iterErr)
		recent = append(recent, entry)
	}
	if assert.Equal(t, 2, len(oldest)) && assert.Equal(t, 2, len(recent)) {
		assert.Equal(t, oldest[0].ID, recent[1].ID)
		assert.Equal(t, oldest[1].ID, recent[0].ID)
	}
}

func TestService_FsBacked(t *testing.T) {
	ctx := context.Background()
	baseDir := t.TempDir()
	srv, err := NewFromConfig(&Config{
		Storage: StorageConfig{Vendor: VendorFS, BasePath: baseDir},
		Events:  EventsConfig{Disabled: true},
	})
	assert.Nil(t, err)
	assert.Nil(t, srv.Events())

	aQuote := &quote{id: "q-3", creator: "alice", Amount: 500}
	created, err := srv.Negotiate(ctx, aQuote, "alice", "bob", "opening")
	assert.Nil(t, err)
	if !assert.NotNil(t, created) {
		return
	}
	assert.Nil(t, srv.Accept(ctx, created.ID, "bob", "fine"))

	// a second service over the same directory sees the persisted state
	other, err := NewFromConfig(&Config{
		Storage: StorageConfig{Vendor: VendorFS, BasePath: baseDir},
		Events:  EventsConfig{Disabled: true},
	})
	assert.Nil(t, err)
	reloaded, err := other.Negotiation(ctx, created.ID)
	assert.Nil(t, err)
	if assert.NotNil(t, reloaded) {
		assert.True(t, reloaded.IsAccepted())
	}
	entries, err := other.Entries(ctx, created.ID, false)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(entries))
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		config      *Config
		valid       bool
	}{
		{
			description: "default config",
			config:      DefaultConfig(),
			valid:       true,
		},
		{
			description: "fs storage without base path",
			config:      &Config{Storage: StorageConfig{Vendor: VendorFS}},
		},
		{
			description: "unknown storage vendor",
			config:      &Config{Storage: StorageConfig{Vendor: "redis"}},
		},
		{
			description: "fs events without base path",
			config:      &Config{Events: EventsConfig{Vendor: VendorFS}},
		},
	}
	for _, testCase := range testCases {
		err := testCase.config.Validate()
		if testCase.valid {
			assert.Nil(t, err, testCase.description)
			continue
		}
		assert.NotNil(t, err, testCase.description)
	}
}

func TestDecodeConfig(t *testing.T) {
	config, err := DecodeConfig([]byte(`
storage:
  vendor: fs
  basePath: /tmp/pact-test
events:
  vendor: memory
`))
	assert.Nil(t, err)
	assert.Equal(t, VendorFS, config.Storage.Vendor)
	assert.Equal(t, "/tmp/pact-test", config.Storage.BasePath)
	assert.Equal(t, VendorMemory, config.Events.Vendor)
}
