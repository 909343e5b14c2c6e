package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/julianstephens/tinyhabits/internal/constants"
	"github.com/julianstephens/tinyhabits/internal/models"
)

type document struct {
	Version  int                          `json:"version"`
	Settings models.Settings              `json:"settings"`
	Habits   map[string]models.Habit      `json:"habits"`
	Entries  map[string]models.HabitEntry `json:"entries"`
}

// JSONStore keeps the whole database in memory and, when it has a path,
// rewrites it as one JSON document after every change. With an empty path
// nothing touches disk.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	store *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

// NewMemoryStore returns an initialized store that never writes to disk
func NewMemoryStore() *JSONStore {
	s := &JSONStore{}
	s.store = newDocument()
	return s
}

func newDocument() *document {
	return &document{
		Version:  1,
		Settings: models.DefaultSettings(),
		Habits:   make(map[string]models.Habit),
		Entries:  make(map[string]models.HabitEntry),
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		if s.store == nil {
			s.store = newDocument()
		}
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Re-running init keeps existing data
	if _, err := os.Stat(s.path); err == nil {
		return s.load()
	}

	s.store = newDocument()
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		if s.store == nil {
			return ErrNotLoaded
		}
		return nil
	}
	return s.load()
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if doc.Habits == nil {
		doc.Habits = make(map[string]models.Habit)
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]models.HabitEntry)
	}
	models.ApplyDefaultSettings(&doc.Settings)

	s.store = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return models.Settings{}, ErrNotLoaded
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Habits[habit.ID]; ok {
		return fmt.Errorf("habit %s already exists", habit.ID)
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return models.Habit{}, ErrNotLoaded
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return habit, nil
}

// GetHabitByName matches case-insensitively, preferring active habits
func (s *JSONStore) GetHabitByName(name string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return models.Habit{}, ErrNotLoaded
	}

	var found *models.Habit
	for _, h := range sortedHabits(s.store.Habits, true) {
		if !models.SameName(h.Name, name) {
			continue
		}
		if !h.IsArchived() {
			return h, nil
		}
		if found == nil {
			found = &h
		}
	}
	if found == nil {
		return models.Habit{}, fmt.Errorf("habit %q: %w", name, ErrNotFound)
	}
	return *found, nil
}

func (s *JSONStore) FetchHabits(filter HabitFilter) ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, ErrNotLoaded
	}
	return sortedHabits(s.store.Habits, filter.IncludeArchived), nil
}

func sortedHabits(habits map[string]models.Habit, includeArchived bool) []models.Habit {
	result := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if !includeArchived && h.IsArchived() {
			continue
		}
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Habits[habit.ID]; !ok {
		return fmt.Errorf("habit %s: %w", habit.ID, ErrNotFound)
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

// DeleteHabit removes the habit and its entries
func (s *JSONStore) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Habits[id]; !ok {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}

	delete(s.store.Habits, id)
	for entryID, e := range s.store.Entries {
		if e.HabitID == id {
			delete(s.store.Entries, entryID)
		}
	}
	return s.save()
}

func (s *JSONStore) InsertEntry(entry models.HabitEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Habits[entry.HabitID]; !ok {
		return fmt.Errorf("habit %s: %w", entry.HabitID, ErrNotFound)
	}
	for _, e := range s.store.Entries {
		if e.HabitID == entry.HabitID && e.Day == entry.Day {
			return ErrConflict
		}
	}

	entry.Transient = false
	s.store.Entries[entry.ID] = entry
	if err := s.save(); err != nil {
		delete(s.store.Entries, entry.ID)
		return err
	}
	return nil
}

func (s *JSONStore) FetchEntries(filter EntryFilter) ([]models.HabitEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, ErrNotLoaded
	}

	var result []models.HabitEntry
	for _, e := range s.store.Entries {
		if filter.Matches(e) {
			result = append(result, e)
		}
	}
	SortEntries(result, filter.Sort)
	return result, nil
}

// SortEntries orders entries by Date, breaking ties on Day then ID
func SortEntries(entries []models.HabitEntry, order SortOrder) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if order == DateDesc {
			a, b = b, a
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.ID < b.ID
	})
}

func (s *JSONStore) UpdateEntry(entry models.HabitEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	prev, ok := s.store.Entries[entry.ID]
	if !ok {
		return fmt.Errorf("entry %s: %w", entry.ID, ErrNotFound)
	}

	entry.Transient = false
	s.store.Entries[entry.ID] = entry
	if err := s.save(); err != nil {
		s.store.Entries[entry.ID] = prev
		return err
	}
	return nil
}

func (s *JSONStore) DeleteEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	prev, ok := s.store.Entries[id]
	if !ok {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}

	delete(s.store.Entries, id)
	if err := s.save(); err != nil {
		s.store.Entries[id] = prev
		return err
	}
	return nil
}

func (s *JSONStore) DeleteEntriesForHabit(habitID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return 0, ErrNotLoaded
	}

	deleted := 0
	for id, e := range s.store.Entries {
		if e.HabitID == habitID {
			delete(s.store.Entries, id)
			deleted++
		}
	}
	return deleted, s.save()
}

// DeleteAll drops every habit and entry but keeps settings
func (s *JSONStore) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Habits = make(map[string]models.Habit)
	s.store.Entries = make(map[string]models.HabitEntry)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
