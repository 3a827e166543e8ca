package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/logger"
	"github.com/krishimitra/krishi/internal/models"
)

// document is the on-disk layout: one object per user keyed by mobile.
type document map[string]models.UserRecord

// JSONStore keeps every user in a single JSON document that is read in full
// and rewritten in full on every operation.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Init creates the config directory and an empty document if none exists.
func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return apperrors.Unavailable("create config directory", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	return s.write(document{})
}

// Load checks that the document is readable. A missing file is a fresh store.
func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.read()
	return err
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) GetUser(mobile string) (models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return models.UserRecord{}, err
	}
	u, ok := doc[mobile]
	if !ok {
		return models.UserRecord{}, apperrors.NotFoundf("user %s", mobile)
	}
	return u, nil
}

// GetAllUsers returns every record sorted by mobile.
func (s *JSONStore) GetAllUsers() ([]models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	users := make([]models.UserRecord, 0, len(doc))
	for _, u := range doc {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Mobile < users[j].Mobile })
	return users, nil
}

func (s *JSONStore) SaveUser(user models.UserRecord) error {
	if user.Mobile == "" {
		return apperrors.InvalidArgumentf("user record without mobile")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[user.Mobile] = user
	return s.write(doc)
}

// SaveAllUsers replaces the whole document with users.
func (s *JSONStore) SaveAllUsers(users []models.UserRecord) error {
	doc := make(document, len(users))
	for _, u := range users {
		if u.Mobile == "" {
			return apperrors.InvalidArgumentf("user record without mobile")
		}
		doc[u.Mobile] = u
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(doc)
}

// Document returns the stored records exactly as they are on disk, without
// reconciling each record's mobile with its key.
func (s *JSONStore) Document() (map[string]models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readRaw()
}

func (s *JSONStore) read() (document, error) {
	doc, err := s.readRaw()
	if err != nil {
		return nil, err
	}
	// The document key wins over a record's own mobile.
	for mobile, u := range doc {
		if u.Mobile != mobile {
			if u.Mobile != "" {
				logger.Warn("Record mobile differs from its document key, using the key",
					"key", mobile, "mobile", u.Mobile)
			}
			u.Mobile = mobile
			doc[mobile] = u
		}
	}
	return doc, nil
}

func (s *JSONStore) readRaw() (document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return document{}, nil
		}
		return nil, apperrors.Unavailable("read "+s.path, err)
	}
	if len(data) == 0 {
		return document{}, nil
	}

	doc := document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Unavailable("parse "+s.path, err)
	}
	return doc, nil
}

// write replaces the document atomically through a temp file in the same directory.
func (s *JSONStore) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperrors.Unavailable("serialize store", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return apperrors.Unavailable("create config directory", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return apperrors.Unavailable("write "+s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.Unavailable("write "+s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Unavailable("write "+s.path, err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return apperrors.Unavailable("write "+s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return apperrors.Unavailable(fmt.Sprintf("replace %s", s.path), err)
	}

	logger.Debug("Wrote user store", "path", s.path, "users", len(doc))
	return nil
}
