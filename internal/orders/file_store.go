package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"voice-order-workers/internal/models"
)

// DefaultFilePath is where FileStore keeps orders when no path is configured.
const DefaultFilePath = "orders.json"

// FileStore keeps every order in one pretty-printed JSON array. Each write
// rewrites the file through a temp file and rename, so readers never see a
// partial append.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates the file with an empty array if it does not exist.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultFilePath
	}
	s := &FileStore{path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.save(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, storeErr("stat", err)
	}
	return s, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Create(ctx context.Context, order models.Order) (models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return models.Order{}, err
	}
	all = append(all, order)
	if err := s.save(all); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *FileStore) List(ctx context.Context) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

func (s *FileStore) Get(ctx context.Context, orderID string) (models.Order, error) {
	all, err := s.List(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range all {
		if o.OrderID == orderID {
			return o, nil
		}
	}
	return models.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
}

func (s *FileStore) load() ([]models.Order, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, storeErr("read", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Order{}, nil
	}

	all := make([]models.Order, 0)
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, storeErr("decode", err)
	}
	return all, nil
}

func (s *FileStore) save(all []models.Order) error {
	if all == nil {
		all = []models.Order{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(all); err != nil {
		return storeErr("encode", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return storeErr("write", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return storeErr("write", err)
	}
	if err := tmp.Close(); err != nil {
		return storeErr("write", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return storeErr("rename", err)
	}
	return nil
}
