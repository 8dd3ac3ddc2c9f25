package cart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys. The versioned key is the only one written; the legacy key
// is migrated from and deleted on first load.
const (
	StorageKey       = "sushii_cart_v2"
	LegacyStorageKey = "sushii_cart"
	ConsentKey       = "sushii_cookies"
)

// Storage is the client's persistent key store, one value per key.
type Storage interface {
	Read(key string) ([]byte, bool)
	Write(key string, value []byte) error
	Remove(key string) error
}

// MemStorage is an in-memory Storage, used in tests and as a fallback
// when no persistence dir is available.
type MemStorage struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemStorage() *MemStorage {
	return &MemStorage{values: make(map[string][]byte)}
}

func (s *MemStorage) Read(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStorage) Write(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemStorage) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// FileStorage keeps one JSON file per key under a directory.
type FileStorage struct {
	Dir string
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

func (s *FileStorage) Read(key string) ([]byte, bool) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (s *FileStorage) Write(key string, value []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), value, 0o644)
}

func (s *FileStorage) Remove(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// legacyItem tolerates both the old and the new field names.
type legacyItem struct {
	ID        *float64 `json:"id"`
	ProductID *float64 `json:"productId"`
	Qty       *float64 `json:"qty"`
	Quantity  *float64 `json:"quantity"`
}

// Load reads the persisted cart under the versioned key, falling back to
// a one-shot migration of the legacy key. Idempotent: after the first
// call the legacy key is gone and subsequent loads return the same cart.
func Load(s Storage) []Item {
	if raw, ok := s.Read(StorageKey); ok {
		var items []Item
		if err := json.Unmarshal(raw, &items); err == nil && items != nil {
			return items
		}
	}
	return migrateLegacy(s)
}

// migrateLegacy translates id/qty entries to the current field names,
// dropping anything without a positive integer product id. The legacy key
// is removed whether or not anything was salvageable.
func migrateLegacy(s Storage) []Item {
	raw, ok := s.Read(LegacyStorageKey)
	if !ok {
		return []Item{}
	}

	var rawEntries []json.RawMessage
	if err := json.Unmarshal(raw, &rawEntries); err != nil {
		_ = s.Remove(LegacyStorageKey)
		return []Item{}
	}

	migrated := make([]Item, 0, len(rawEntries))
	for _, rawEntry := range rawEntries {
		var entry legacyItem
		if err := json.Unmarshal(rawEntry, &entry); err != nil {
			continue
		}

		idValue := 0.0
		switch {
		case entry.ID != nil:
			idValue = *entry.ID
		case entry.ProductID != nil:
			idValue = *entry.ProductID
		}
		if idValue <= 0 || idValue != float64(int64(idValue)) {
			continue
		}
		id := int64(idValue)

		qty := 1
		switch {
		case entry.Qty != nil && *entry.Qty > 0:
			qty = int(*entry.Qty)
		case entry.Quantity != nil && *entry.Quantity > 0:
			qty = int(*entry.Quantity)
		}
		if qty < 1 {
			qty = 1
		}

		migrated = append(migrated, Item{ProductID: id, Quantity: qty})
	}

	if len(migrated) > 0 {
		_ = Save(s, migrated)
	}
	_ = s.Remove(LegacyStorageKey)
	return migrated
}

// Save persists the whole cart under the versioned key, replace-on-write.
func Save(s Storage, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Write(StorageKey, raw)
}

// Clear removes the persisted cart.
func Clear(s Storage) error {
	return s.Remove(StorageKey)
}

// Consent is the cookie-consent preference.
type Consent string

const (
	ConsentUnset    Consent = ""
	ConsentAccepted Consent = "accepted"
	ConsentRejected Consent = "rejected"
)

func LoadConsent(s Storage) Consent {
	raw, ok := s.Read(ConsentKey)
	if !ok {
		return ConsentUnset
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ConsentUnset
	}
	switch Consent(v) {
	case ConsentAccepted, ConsentRejected:
		return Consent(v)
	}
	return ConsentUnset
}

func SaveConsent(s Storage, c Consent) error {
	raw, err := json.Marshal(string(c))
	if err != nil {
		return err
	}
	return s.Write(ConsentKey, raw)
}
