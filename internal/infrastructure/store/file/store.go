// Package file implements the user record store: an in-memory table that is
// the single source of truth, snapshotted wholesale to one JSON file after
// every mutation.
//
// Durability is best-effort by design: the in-memory mutation is applied and
// acknowledged whether or not the snapshot write succeeds. Write failures are
// logged and counted, never rolled back. Flush exposes the write error for
// shutdown and for callers that want confirmation.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderly/auth-service/internal/api/metrics"
	"github.com/wanderly/auth-service/internal/core/domain"
	"github.com/wanderly/auth-service/internal/core/ports"
)

type snapshotPreferences struct {
	FavoriteDestinations []string `json:"favoriteDestinations"`
	TravelStyle          string   `json:"travelStyle"`
	LastSearches         []string `json:"lastSearches"`
}

// snapshotUser is the persisted shape of a record. Unlike domain.User it
// carries the password hash, so it must never leak onto the API surface.
type snapshotUser struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	PasswordHash string              `json:"password"`
	CreatedAt    time.Time           `json:"createdAt"`
	LastLogin    time.Time           `json:"lastLogin"`
	Preferences  snapshotPreferences `json:"preferences"`
}

type snapshot struct {
	Users   []snapshotUser `json:"users"`
	Counter int64          `json:"counter"`
}

// Store implements ports.UserRepository. A single mutex serializes mutations
// so the duplicate-email check and the append cannot interleave; a separate
// mutex serializes snapshot writes so disk I/O never holds up readers.
type Store struct {
	mu      sync.RWMutex
	users   []*domain.User
	byEmail map[string]int
	counter int64
	seq     uint64

	// writtenSeq is the seq of the last snapshot on disk, guarded by
	// writeMu. Snapshots are encoded in mutation order under mu but written
	// in arrival order, so a write for an older seq is dropped rather than
	// clobbering a newer snapshot.
	writeMu    sync.Mutex
	writtenSeq uint64
	path       string
	log        zerolog.Logger
}

func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{
		byEmail: make(map[string]int),
		counter: 1,
		path:    path,
		log:     log,
	}
}

// Load reads the snapshot file into memory. A missing or unreadable file is
// not an error: the store starts empty with the counter at 1 rather than
// failing the process.
func (s *Store) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info().Str("path", s.path).Msg("no existing snapshot, starting fresh")
		} else {
			s.log.Warn().Err(err).Str("path", s.path).Msg("snapshot unreadable, starting fresh")
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("snapshot corrupt, starting fresh")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = s.users[:0]
	s.byEmail = make(map[string]int, len(snap.Users))
	for _, su := range snap.Users {
		u := &domain.User{
			ID:           su.ID,
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: su.PasswordHash,
			CreatedAt:    su.CreatedAt,
			LastLogin:    su.LastLogin,
			Preferences: domain.Preferences{
				FavoriteDestinations: su.Preferences.FavoriteDestinations,
				TravelStyle:          su.Preferences.TravelStyle,
				LastSearches:         su.Preferences.LastSearches,
			},
		}
		s.byEmail[normalizeEmail(u.Email)] = len(s.users)
		s.users = append(s.users, u)
	}
	s.counter = snap.Counter
	if s.counter < 1 {
		s.counter = 1
	}

	metrics.StoreRecords.Set(float64(len(s.users)))
	s.log.Info().Int("users", len(s.users)).Msg("snapshot loaded")
}

func (s *Store) Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	normalized := normalizeEmail(email)

	s.mu.Lock()
	if _, exists := s.byEmail[normalized]; exists {
		s.mu.Unlock()
		return nil, domain.ErrEmailTaken
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           s.counter,
		Name:         strings.TrimSpace(name),
		Email:        normalized,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		LastLogin:    now,
		Preferences: domain.Preferences{
			FavoriteDestinations: []string{},
			LastSearches:         []string{},
		},
	}
	s.counter++
	s.byEmail[normalized] = len(s.users)
	s.users = append(s.users, user)
	s.seq++
	data, seq := s.encodeLocked()
	s.mu.Unlock()

	metrics.StoreRecords.Inc()
	s.persist(data, seq)
	return user.Clone(), nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return s.users[idx].Clone(), nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u := s.findLocked(id)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (s *Store) Update(ctx context.Context, id int64, update ports.ProfileUpdate) (*domain.User, error) {
	s.mu.Lock()
	u := s.findLocked(id)
	if u == nil {
		s.mu.Unlock()
		return nil, domain.ErrUserNotFound
	}

	if update.Name != nil {
		if name := strings.TrimSpace(*update.Name); name != "" {
			u.Name = name
		}
	}
	if p := update.Preferences; p != nil {
		if p.FavoriteDestinations != nil {
			u.Preferences.FavoriteDestinations = append([]string(nil), (*p.FavoriteDestinations)...)
		}
		if p.TravelStyle != nil {
			u.Preferences.TravelStyle = *p.TravelStyle
		}
		if p.LastSearches != nil {
			u.Preferences.LastSearches = append([]string(nil), (*p.LastSearches)...)
		}
	}

	clone := u.Clone()
	s.seq++
	data, seq := s.encodeLocked()
	s.mu.Unlock()

	s.persist(data, seq)
	return clone, nil
}

func (s *Store) TouchLastLogin(ctx context.Context, id int64) error {
	s.mu.Lock()
	u := s.findLocked(id)
	if u == nil {
		s.mu.Unlock()
		return domain.ErrUserNotFound
	}
	u.LastLogin = time.Now().UTC()
	s.seq++
	data, seq := s.encodeLocked()
	s.mu.Unlock()

	s.persist(data, seq)
	return nil
}

func (s *Store) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Flush writes the current snapshot and reports the write error. Used at
// shutdown for the final flush, and anywhere confirmation matters.
func (s *Store) Flush() error {
	s.mu.RLock()
	data, seq := s.encodeLocked()
	s.mu.RUnlock()
	return s.write(data, seq)
}

// findLocked returns the record with the given id, or nil. Caller holds mu.
func (s *Store) findLocked(id int64) *domain.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// encodeLocked serializes the whole table and returns it with the current
// snapshot seq. Caller holds mu (read or write); the actual disk write
// happens outside the table lock.
func (s *Store) encodeLocked() ([]byte, uint64) {
	snap := snapshot{Users: make([]snapshotUser, 0, len(s.users)), Counter: s.counter}
	for _, u := range s.users {
		snap.Users = append(snap.Users, snapshotUser{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			CreatedAt:    u.CreatedAt,
			LastLogin:    u.LastLogin,
			Preferences: snapshotPreferences{
				FavoriteDestinations: u.Preferences.FavoriteDestinations,
				TravelStyle:          u.Preferences.TravelStyle,
				LastSearches:         u.Preferences.LastSearches,
			},
		})
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		// A marshal failure here means a programming error in the types.
		s.log.Error().Err(err).Msg("snapshot encode failed")
		return nil, s.seq
	}
	return data, s.seq
}

// persist is the best-effort write path: failures are logged and counted but
// the in-memory mutation stands.
func (s *Store) persist(data []byte, seq uint64) {
	if err := s.write(data, seq); err != nil {
		metrics.StorePersistErrorsTotal.Inc()
		s.log.Error().Err(err).Str("path", s.path).Msg("snapshot write failed")
	}
}

func (s *Store) write(data []byte, seq uint64) error {
	if data == nil {
		return nil
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// Writes arrive in goroutine scheduling order, not encoding order. A
	// snapshot older than the one on disk is dropped.
	if seq < s.writtenSeq {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}
	s.writtenSeq = seq
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
