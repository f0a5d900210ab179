package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/pact/model"
	"github.com/viant/pact/service/dao"
	"github.com/viant/pact/service/dao/criteria"
	"github.com/viant/pact/service/dao/negotiation"
)

// Service implements a filesystem-backed negotiation store. Each
// negotiation is persisted as a single JSON document named by its ID.
type Service struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

var _ negotiation.Service = (*Service)(nil)

// Save persists a negotiation to the filesystem.
func (s *Service) Save(ctx context.Context, n *model.Negotiation) error {
	if n == nil {
		return dao.ErrNilEntity
	}
	if n.ID == "" {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.lookupByContent(ctx, n.Content)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != n.ID {
		return dao.ErrDuplicateContent
	}

	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal negotiation: %w", err)
	}

	filePath := s.recordPath(n.ID)
	if err := s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save negotiation to file %s: %w", filePath, err)
	}
	return nil
}

// Load retrieves a negotiation from the filesystem.
func (s *Service) Load(ctx context.Context, id string) (*model.Negotiation, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filePath := s.recordPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check if negotiation exists: %w", err)
	}
	if !exists {
		return nil, dao.ErrNotFound
	}

	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read negotiation file: %w", err)
	}

	ret := &model.Negotiation{}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal negotiation data: %w", err)
	}
	return ret, nil
}

// Delete removes a negotiation record from the filesystem.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.recordPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to check if negotiation exists: %w", err)
	}
	if !exists {
		return dao.ErrNotFound
	}
	if err := s.fs.Delete(ctx, filePath); err != nil {
		return fmt.Errorf("failed to delete negotiation file: %w", err)
	}
	return nil
}

// List returns all stored negotiations matching the supplied filters.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Negotiation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list(ctx, parameters...)
}

func (s *Service) list(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Negotiation, error) {
	objects, err := s.fs.List(ctx, s.basePath, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list negotiation files: %w", err)
	}

	var ret []*model.Negotiation
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			log.Printf("error reading negotiation file %s: %v", object.URL(), err)
			continue
		}
		candidate := &model.Negotiation{}
		if err := json.Unmarshal(data, candidate); err != nil {
			log.Printf("error unmarshaling negotiation from %s: %v", object.URL(), err)
			continue
		}
		if !criteria.Match("State", candidate.State, parameters) {
			continue
		}
		if !criteria.Match("ContentKind", candidate.Content.Kind, parameters) {
			continue
		}
		ret = append(ret, candidate)
	}
	return ret, nil
}

// LookupByContent scans stored negotiations for one bound to the content
// reference; (nil, nil) when absent.
func (s *Service) LookupByContent(ctx context.Context, ref model.ContentRef) (*model.Negotiation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupByContent(ctx, ref)
}

func (s *Service) lookupByContent(ctx context.Context, ref model.ContentRef) (*model.Negotiation, error) {
	if ref.IsZero() {
		return nil, nil
	}
	candidates, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, candidate := range candidates {
		if candidate.Content == ref {
			return candidate, nil
		}
	}
	return nil, nil
}

func (s *Service) recordPath(id string) string {
	return path.Join(s.basePath, fmt.Sprintf("%s.json", id))
}

// New creates a filesystem negotiation store rooted at basePath.
func New(basePath string) (*Service, error) {
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

	return &Service{basePath: basePath, fs: fileService}, nil
}
