package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// ErrSaveNotFound is returned when no saved game has the requested ID.
var ErrSaveNotFound = errors.New("storage: save not found")

// SavedGame is a persisted game in progress. State is the game's own
// serialized form; the store compresses it at rest.
type SavedGame struct {
	ID        string
	GameID    string
	Player    string
	Score     int
	State     []byte // nil in listings
	RawSize   int    // uncompressed state size
	Stored    int    // compressed state size
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

// codecs returns the shared zstd encoder and decoder. EncodeAll and
// DecodeAll are safe for concurrent use.
func codecs() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return encoder, decoder, codecErr
}

// SaveGame stores save and returns its ID. An empty ID creates a new save;
// an existing ID overwrites that save.
func (s *Store) SaveGame(save SavedGame) (string, error) {
	enc, _, err := codecs()
	if err != nil {
		return "", fmt.Errorf("storage: zstd init: %w", err)
	}

	if save.ID == "" {
		save.ID = uuid.NewString()
	} else if _, err := uuid.Parse(save.ID); err != nil {
		return "", fmt.Errorf("storage: invalid save id %q: %w", save.ID, err)
	}

	blob := enc.EncodeAll(save.State, nil)

	_, err = s.db.Exec(
		`INSERT INTO saves (id, game_id, player, score, state, raw_size)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			game_id = excluded.game_id,
			player = excluded.player,
			score = excluded.score,
			state = excluded.state,
			raw_size = excluded.raw_size,
			updated_at = CURRENT_TIMESTAMP`,
		save.ID, save.GameID, save.Player, save.Score, blob, len(save.State),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}
	return save.ID, nil
}

// LoadGame returns the save with the given ID, state decompressed.
func (s *Store) LoadGame(id string) (*SavedGame, error) {
	_, dec, err := codecs()
	if err != nil {
		return nil, fmt.Errorf("storage: zstd init: %w", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrSaveNotFound, id)
	}

	var save SavedGame
	var blob []byte
	var createdAt, updatedAt any
	err = s.db.QueryRow(
		`SELECT id, game_id, player, score, state, raw_size, created_at, updated_at
		 FROM saves WHERE id = ?`,
		id,
	).Scan(&save.ID, &save.GameID, &save.Player, &save.Score, &blob, &save.RawSize, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrSaveNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}

	state, err := dec.DecodeAll(blob, make([]byte, 0, save.RawSize))
	if err != nil {
		return nil, fmt.Errorf("storage: corrupt save %s: %w", id, err)
	}
	save.State = state
	save.Stored = len(blob)
	save.CreatedAt = parseTime(createdAt)
	save.UpdatedAt = parseTime(updatedAt)
	return &save, nil
}

// ListSaves returns saves newest first without their state. An empty
// player lists every player's saves.
func (s *Store) ListSaves(player string, limit int) ([]SavedGame, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, score, raw_size, length(state), created_at, updated_at
		 FROM saves
		 WHERE ? = '' OR player = ?
		 ORDER BY updated_at DESC, created_at DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []SavedGame
	for rows.Next() {
		var save SavedGame
		var createdAt, updatedAt any
		if err := rows.Scan(&save.ID, &save.GameID, &save.Player, &save.Score, &save.RawSize, &save.Stored, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		save.CreatedAt = parseTime(createdAt)
		save.UpdatedAt = parseTime(updatedAt)
		saves = append(saves, save)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return saves, nil
}

// DeleteSave removes the save with the given ID.
func (s *Store) DeleteSave(id string) error {
	res, err := s.db.Exec("DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrSaveNotFound, id)
	}
	return nil
}
