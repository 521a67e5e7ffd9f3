package save

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cory-johannsen/delve/internal/game/character"
)

// ErrIO is matched by every failure to reach the underlying storage.
var ErrIO = errors.New("save storage failure")

// ErrSlotEmpty indicates that no save exists in the requested slot.
var ErrSlotEmpty = fmt.Errorf("%w: slot is empty", ErrIO)

// Store persists characters in named slots.
type Store interface {
	// Save replaces the contents of slot with c.
	//
	// Postcondition: a subsequent Load of slot returns a character equal to c,
	// or Save returns an error and the previous contents are untouched.
	Save(ctx context.Context, slot string, c *character.Character) error
	// Load returns the character saved in slot.
	//
	// Postcondition: returns an error matching ErrSlotEmpty when nothing was
	// saved, ErrIO when storage fails, or ErrDecode when the data is malformed.
	Load(ctx context.Context, slot string) (*character.Character, error)
}

// Lister is implemented by stores that can enumerate their occupied slots.
type Lister interface {
	Slots(ctx context.Context) ([]string, error)
}

// FileStore keeps one save per file. The slot named by defaultSlot maps to
// path itself; any other slot maps to "<path>.<slot>".
type FileStore struct {
	path        string
	defaultSlot string
}

// NewFileStore returns a FileStore rooted at path.
//
// Precondition: path must be non-empty.
func NewFileStore(path, defaultSlot string) *FileStore {
	return &FileStore{path: path, defaultSlot: defaultSlot}
}

// PathFor returns the file backing slot.
func (s *FileStore) PathFor(slot string) string {
	if slot == "" || slot == s.defaultSlot {
		return s.path
	}
	return s.path + "." + slot
}

// Save writes c to a temporary file beside the target and renames it into place.
func (s *FileStore) Save(ctx context.Context, slot string, c *character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Marshal(c)
	if err != nil {
		return err
	}

	target := s.PathFor(slot)
	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", ErrIO, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: chmod %s: %w", ErrIO, tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing %s: %w", ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrIO, tmpName, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", ErrIO, target, err)
	}
	return nil
}

// Load reads and decodes the file backing slot.
func (s *FileStore) Load(ctx context.Context, slot string) (*character.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target := s.PathFor(slot)
	data, err := os.ReadFile(target)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSlotEmpty, target)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, target, err)
	}
	return Decode(bytes.NewReader(data))
}

// Slots lists the slots holding a loadable save. Sibling files that share
// the path prefix but do not decode, such as backups or temp files, are
// skipped.
func (s *FileStore) Slots(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, base := filepath.Split(s.path)
	entries, err := os.ReadDir(filepath.Clean(dir))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %w", ErrIO, dir, err)
	}

	var slots []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		var slot string
		switch name := e.Name(); {
		case name == base:
			slot = s.defaultSlot
		case strings.HasPrefix(name, base+".") && !strings.Contains(name, ".tmp-"):
			slot = strings.TrimPrefix(name, base+".")
		default:
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, e.Name(), err)
		}
		if _, err := Unmarshal(data); err != nil {
			continue
		}
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	return slots, nil
}
