package tokenstore

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/samphillips38/bloom-web-sub001/internal/model"
)

// Store persists the credential token pair for each browser session. The
// cookie value is an opaque random token; the refresh token is sealed at
// rest with the configured passphrase.
type Store struct {
	db         *sql.DB
	passphrase string
}

func NewStore(db *sql.DB, passphrase string) *Store {
	return &Store{db: db, passphrase: passphrase}
}

const sessionCols = `id, token, access_token, refresh_token, created_at, updated_at`

func (s *Store) scanSession(scanner interface{ Scan(...any) error }) (*model.LocalSession, error) {
	var ls model.LocalSession
	var sealed []byte

	err := scanner.Scan(&ls.ID, &ls.Token, &ls.AccessToken, &sealed, &ls.CreatedAt, &ls.UpdatedAt)
	if err != nil {
		return nil, err
	}

	refresh, err := Unseal(s.passphrase, sealed)
	if err != nil {
		return nil, fmt.Errorf("unseal refresh token: %w", err)
	}
	ls.RefreshToken = refresh
	return &ls, nil
}

// generateToken returns a 32-byte random token, hex-encoded.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Create stores a new browser session for the given token pair and
// returns it with the cookie token populated.
func (s *Store) Create(accessToken, refreshToken string) (*model.LocalSession, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	sealed, err := Seal(s.passphrase, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("seal refresh token: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO local_sessions (token, access_token, refresh_token) VALUES (?, ?, ?)`,
		token, accessToken, sealed,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+sessionCols+` FROM local_sessions WHERE id = ?`, id)
	return s.scanSession(row)
}

// GetByToken looks up a session by its cookie token. Returns (nil, nil)
// when no session exists for the token.
func (s *Store) GetByToken(token string) (*model.LocalSession, error) {
	row := s.db.QueryRow(`SELECT `+sessionCols+` FROM local_sessions WHERE token = ?`, token)
	ls, err := s.scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return ls, nil
}

// UpdateTokens replaces the stored token pair after a refresh.
func (s *Store) UpdateTokens(id int64, accessToken, refreshToken string) error {
	sealed, err := Seal(s.passphrase, refreshToken)
	if err != nil {
		return fmt.Errorf("seal refresh token: %w", err)
	}
	_, err = s.db.Exec(
		`UPDATE local_sessions SET access_token = ?, refresh_token = ?, updated_at = datetime('now') WHERE id = ?`,
		accessToken, sealed, id,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// Delete removes a session. This is the local "clear tokens" operation:
// after it the browser session is anonymous.
func (s *Store) Delete(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM local_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteStale removes sessions not refreshed within maxAge. Run
// periodically; a stale row only means the user must sign in again.
func (s *Store) DeleteStale(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge).Format("2006-01-02 15:04:05")
	result, err := s.db.Exec(`DELETE FROM local_sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
