package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/pact/model"
	"github.com/viant/pact/service/dao"
	"github.com/viant/pact/service/history"
)

// Log implements a filesystem-backed append-only history log. Each entry is
// written once as its own JSON document under the negotiation's directory
// and never rewritten. Undecodable entry files are logged and skipped so a
// single corrupt record cannot abort history reconstruction.
type Log struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

var _ history.Log = (*Log)(nil)

func (l *Log) Append(ctx context.Context, entry *model.Entry) error {
	if entry == nil {
		return dao.ErrNilEntity
	}
	if entry.NegotiationID == "" || entry.ID == "" {
		return dao.ErrInvalidID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	filePath := path.Join(l.basePath, entry.NegotiationID,
		fmt.Sprintf("%020d-%s.json", entry.Timestamp.UnixNano(), entry.ID))
	if err := l.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to append history entry %s: %w", filePath, err)
	}
	return nil
}

func (l *Log) Entries(ctx context.Context, negotiationID string, recentFirst bool) ([]*model.Entry, error) {
	if negotiationID == "" {
		return nil, dao.ErrInvalidID
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	parent := path.Join(l.basePath, negotiationID)
	if exists, _ := l.fs.Exists(ctx, parent); !exists {
		return nil, nil
	}
	objects, err := l.fs.List(ctx, parent, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}

	var ret []*model.Entry
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := l.fs.Download(ctx, object)
		if err != nil {
			log.Printf("error reading history entry %s: %v", object.URL(), err)
			continue
		}
		entry := &model.Entry{}
		if err := json.Unmarshal(data, entry); err != nil {
			log.Printf("error unmarshaling history entry %s: %v", object.URL(), err)
			continue
		}
		ret = append(ret, entry)
	}

	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Timestamp.Before(ret[j].Timestamp)
	})
	if recentFirst {
		for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
			ret[i], ret[j] = ret[j], ret[i]
		}
	}
	return ret, nil
}

// New creates a filesystem history log rooted at basePath.
func New(basePath string) (*Log, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	fileService := afs.New()
	ctx := context.Background()
	exists, _ := fileService.Exists(ctx, basePath)
	if !exists {
		if err := fileService.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}
	basePath = url.Normalize(basePath, file.Scheme)

	return &Log{basePath: basePath, fs: fileService}, nil
}
