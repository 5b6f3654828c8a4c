package progress

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

// DefaultKey is the item name the watermark is saved under.
const DefaultKey = "progress"

// File stores the watermark in the per-user application data directory.
type File struct {
	m   *gdata.Manager
	key string
}

// savedProgress is the on-disk layout of a progress item.
type savedProgress struct {
	HighestUnlocked int `json:"highestUnlocked"`
}

// OpenFile opens the data directory of appName. Each mode uses its own key so
// campaigns do not unlock each other.
func OpenFile(appName, key string) (*File, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("progress: open data dir: %w", err)
	}
	if key == "" {
		key = DefaultKey
	}
	return &File{m: m, key: key}, nil
}

// LoadLevel implements Backend.
func (f *File) LoadLevel() (int, error) {
	data, err := f.m.LoadItem(f.key)
	if err != nil {
		return 0, fmt.Errorf("progress: load %s: %w", f.key, err)
	}
	if data == nil {
		// Nothing saved yet
		return 0, nil
	}

	var p savedProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return 0, fmt.Errorf("progress: parse %s: %w", f.key, err)
	}
	return p.HighestUnlocked, nil
}

// SaveLevel implements Backend.
func (f *File) SaveLevel(level int) error {
	data, err := json.Marshal(savedProgress{HighestUnlocked: level})
	if err != nil {
		return fmt.Errorf("progress: encode: %w", err)
	}
	if err := f.m.SaveItem(f.key, data); err != nil {
		return fmt.Errorf("progress: save %s: %w", f.key, err)
	}
	return nil
}
