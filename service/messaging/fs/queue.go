package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/pact/internal/idgen"
	"github.com/viant/pact/service/messaging"
)

// Config holds configuration for the filesystem queue.
type Config struct {
	BasePath   string // base directory for queue files
	MaxRetries int
}

// DefaultConfig returns a default queue configuration.
func DefaultConfig() Config {
	return Config{
		BasePath:   "/tmp/pact/queue",
		MaxRetries: 3,
	}
}

// Message implements messaging.Message for the filesystem queue.
type Message[T any] struct {
	ID        string    `json:"id"`
	Data      T         `json:"data"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Retries   int       `json:"retries"`

	queue     *Queue[T]
	processed bool
	mu        sync.Mutex
}

// T returns the message payload.
func (m *Message[T]) T() *T {
	return &m.Data
}

// Ack removes the message from the processing directory.
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	return m.queue.remove(context.Background(), m.queue.processingDir, m.ID)
}

// Nack re-queues the message for another delivery attempt, or parks it on
// the dead letter directory once the retry limit is exceeded.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	if err != nil {
		m.Error = err.Error()
	}
	m.Retries++

	targetDir := m.queue.pendingDir
	if m.Retries > m.queue.config.MaxRetries {
		targetDir = m.queue.dlqDir
	}
	if err := m.queue.write(context.Background(), targetDir, m); err != nil {
		return err
	}
	return m.queue.remove(context.Background(), m.queue.processingDir, m.ID)
}

// Queue implements a filesystem-based messaging.Queue. Pending messages
// live as JSON files under pending/; a consumed message is moved to
// processing/ until acknowledged.
type Queue[T any] struct {
	fs            afs.Service
	config        Config
	pendingDir    string
	processingDir string
	dlqDir        string
	mu            sync.Mutex
}

// NewQueue creates a new filesystem-based queue.
func NewQueue[T any](fileService afs.Service, config Config) (*Queue[T], error) {
	if config.BasePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	q := &Queue[T]{
		fs:            fileService,
		config:        config,
		pendingDir:    path.Join(config.BasePath, "pending"),
		processingDir: path.Join(config.BasePath, "processing"),
		dlqDir:        path.Join(config.BasePath, "dlq"),
	}
	ctx := context.Background()
	for _, dir := range []string{q.pendingDir, q.processingDir, q.dlqDir} {
		if exists, _ := fileService.Exists(ctx, dir); !exists {
			if err := fileService.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
				return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}
	return q, nil
}

// Publish adds a new message to the pending directory.
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	message := &Message[T]{
		ID:        idgen.New(),
		Data:      *t,
		CreatedAt: time.Now(),
	}
	return q.write(ctx, q.pendingDir, message)
}

// Consume retrieves the oldest pending message and moves it to the
// processing directory. It returns (nil, nil) when the queue is empty.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	objects, err := q.fs.List(ctx, q.pendingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending messages: %w", err)
	}
	var pending []storage.Object
	for _, object := range objects {
		if !object.IsDir() && strings.HasSuffix(object.Name(), ".json") {
			pending = append(pending, object)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	object := pending[0]
	data, err := q.fs.DownloadWithURL(ctx, object.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to read message %s: %w", object.URL(), err)
	}
	message := &Message[T]{}
	if err := json.Unmarshal(data, message); err != nil {
		// undeliverable payload, park it and keep consuming
		_ = q.fs.Move(ctx, object.URL(), path.Join(q.dlqDir, object.Name()))
		return nil, fmt.Errorf("failed to unmarshal message %s: %w", object.URL(), err)
	}
	message.queue = q

	if err := q.write(ctx, q.processingDir, message); err != nil {
		return nil, err
	}
	if err := q.fs.Delete(ctx, object.URL()); err != nil {
		return nil, fmt.Errorf("failed to delete pending message: %w", err)
	}
	return message, nil
}

func (q *Queue[T]) write(ctx context.Context, dir string, message *Message[T]) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	target := path.Join(dir, fmt.Sprintf("%s.json", message.ID))
	if err := q.fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write message %s: %w", target, err)
	}
	return nil
}

func (q *Queue[T]) remove(ctx context.Context, dir, id string) error {
	target := path.Join(dir, fmt.Sprintf("%s.json", id))
	if exists, _ := q.fs.Exists(ctx, target); exists {
		if err := q.fs.Delete(ctx, target); err != nil {
			return fmt.Errorf("failed to delete message %s: %w", target, err)
		}
	}
	return nil
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
