package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/samphillips38/bloom-web-sub001/internal/api"
	"github.com/samphillips38/bloom-web-sub001/internal/model"
)

// State is the resolution state of a browser session.
type State int

const (
	// StateResolving is the initial state, before the stored credentials
	// have been checked. It only exists while Resolve is running.
	StateResolving State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "resolving"
	}
}

// StatsState distinguishes a missing stats snapshot from one whose fetch
// failed. Both render as zeroed defaults; tests and logs can tell them
// apart.
type StatsState int

const (
	StatsNotAvailable StatsState = iota
	StatsLoaded
	StatsFetchFailed
)

// Session is the resolved per-request view of a browser session.
type Session struct {
	State       State
	User        *model.User
	Stats       *model.UserStats
	StatsState  StatsState
	StatsAt     time.Time
	LocalID     int64
	AccessToken string
}

func (s *Session) Authenticated() bool {
	return s != nil && s.State == StateAuthenticated && s.User != nil
}

// Client is the subset of the Bloom API used by the session manager.
type Client interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Register(ctx context.Context, name, email, password string) (*api.AuthResult, error)
	GoogleLogin(ctx context.Context, credential string) (*api.AuthResult, error)
	AppleLogin(ctx context.Context, idToken, nameHint string) (*api.AuthResult, error)
	Logout(ctx context.Context, access string) error
	RefreshToken(ctx context.Context, refresh string) (*api.TokenPair, error)
	GetProfile(ctx context.Context, access string) (*model.User, error)
	GetUserStats(ctx context.Context, access string) (*model.UserStats, error)
	SetDailyGoal(ctx context.Context, access string, goal int) error
}

// Store is the credential persistence boundary.
type Store interface {
	Create(accessToken, refreshToken string) (*model.LocalSession, error)
	GetByToken(token string) (*model.LocalSession, error)
	UpdateTokens(id int64, accessToken, refreshToken string) error
	Delete(id int64) error
}

// resolveTTL bounds how long a resolved session is reused before the
// stored credential is re-checked upstream. High-frequency partials (the
// energy countdown polls every second) resolve from this cache instead of
// costing a profile fetch per tick.
const resolveTTL = 30 * time.Second

type resolvedEntry struct {
	sess *Session
	at   time.Time
}

// Manager owns the session lifecycle: Resolving at the start of a
// request, then Anonymous or Authenticated. It does not deduplicate
// concurrent operations; callers disable their controls while a call is
// in flight. Requests arriving within resolveTTL of each other share one
// resolved Session, the same way a browser's tabs share one store.
type Manager struct {
	client Client
	store  Store
	logger *slog.Logger

	mu       sync.Mutex
	resolved map[string]resolvedEntry
}

func NewManager(client Client, store Store, logger *slog.Logger) *Manager {
	return &Manager{
		client:   client,
		store:    store,
		logger:   logger,
		resolved: make(map[string]resolvedEntry),
	}
}

func (m *Manager) cachedSession(cookieToken string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.resolved[cookieToken]
	if !ok {
		return nil
	}
	if time.Since(e.at) >= resolveTTL {
		delete(m.resolved, cookieToken)
		return nil
	}
	return e.sess
}

func (m *Manager) cacheSession(cookieToken string, sess *Session) {
	m.mu.Lock()
	m.resolved[cookieToken] = resolvedEntry{sess: sess, at: time.Now()}
	m.mu.Unlock()
}

// evictSession drops every cache entry for the given local session, so a
// logout in one tab is seen by the others no later than their next
// request.
func (m *Manager) evictSession(localID int64) {
	m.mu.Lock()
	for token, e := range m.resolved {
		if e.sess.LocalID == localID {
			delete(m.resolved, token)
		}
	}
	m.mu.Unlock()
}

// Resolve turns a cookie token into a session. A missing or rejected
// credential yields Anonymous without surfacing an error: a rejected
// stored token is indistinguishable from an expired login. A profile
// fetch success yields Authenticated plus a best-effort stats fetch
// whose failure is recorded but swallowed.
func (m *Manager) Resolve(ctx context.Context, cookieToken string) *Session {
	if cookieToken == "" {
		return &Session{State: StateAnonymous}
	}

	if sess := m.cachedSession(cookieToken); sess != nil {
		return sess
	}

	ls, err := m.store.GetByToken(cookieToken)
	if err != nil {
		m.logger.Error("session lookup", "error", err)
		return &Session{State: StateAnonymous}
	}
	if ls == nil {
		return &Session{State: StateAnonymous}
	}

	access := ls.AccessToken
	if tokenExpiringSoon(access) {
		if refreshed := m.tryRefresh(ctx, ls); refreshed != "" {
			access = refreshed
		}
	}

	user, err := m.client.GetProfile(ctx, access)
	if err != nil && api.IsUnauthorized(err) && ls.RefreshToken != "" {
		if refreshed := m.tryRefresh(ctx, ls); refreshed != "" {
			access = refreshed
			user, err = m.client.GetProfile(ctx, access)
		}
	}
	if err != nil {
		// Implicit logout: the stored credential was rejected.
		m.logger.Info("session bootstrap failed, clearing tokens", "error", err)
		if delErr := m.store.Delete(ls.ID); delErr != nil {
			m.logger.Error("clear tokens", "error", delErr)
		}
		return &Session{State: StateAnonymous}
	}

	sess := &Session{
		State:       StateAuthenticated,
		User:        user,
		LocalID:     ls.ID,
		AccessToken: access,
	}
	m.loadStats(ctx, sess)
	m.cacheSession(cookieToken, sess)
	return sess
}

// tryRefresh exchanges the stored refresh token for a new pair and
// persists it. Returns the new access token, or "" if the exchange
// failed.
func (m *Manager) tryRefresh(ctx context.Context, ls *model.LocalSession) string {
	pair, err := m.client.RefreshToken(ctx, ls.RefreshToken)
	if err != nil {
		m.logger.Debug("token refresh failed", "error", err)
		return ""
	}
	if err := m.store.UpdateTokens(ls.ID, pair.AccessToken, pair.RefreshToken); err != nil {
		m.logger.Error("persist refreshed tokens", "error", err)
	}
	ls.AccessToken = pair.AccessToken
	ls.RefreshToken = pair.RefreshToken
	return pair.AccessToken
}

// loadStats performs the best-effort stats fetch. Failure leaves the
// session Authenticated with StatsFetchFailed; stats render as zeroed
// defaults, never as an error.
func (m *Manager) loadStats(ctx context.Context, sess *Session) {
	stats, err := m.client.GetUserStats(ctx, sess.AccessToken)
	if err != nil {
		m.logger.Debug("stats fetch failed", "error", err)
		sess.StatsState = StatsFetchFailed
		return
	}
	if stats == nil {
		sess.StatsState = StatsNotAvailable
		return
	}
	sess.Stats = stats
	sess.StatsState = StatsLoaded
	sess.StatsAt = time.Now()
}

// establish stores the token pair from a successful auth call and builds
// the authenticated session.
func (m *Manager) establish(ctx context.Context, res *api.AuthResult) (*Session, string, error) {
	ls, err := m.store.Create(res.AccessToken, res.RefreshToken)
	if err != nil {
		return nil, "", err
	}
	sess := &Session{
		State:       StateAuthenticated,
		User:        res.User,
		LocalID:     ls.ID,
		AccessToken: ls.AccessToken,
	}
	m.loadStats(ctx, sess)
	m.cacheSession(ls.Token, sess)
	return sess, ls.Token, nil
}

// Login authenticates with email and password. On failure the error
// propagates unchanged and no state is touched. On success it returns
// the session and the cookie token to set.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, string, error) {
	res, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	return m.establish(ctx, res)
}

func (m *Manager) Register(ctx context.Context, name, email, password string) (*Session, string, error) {
	res, err := m.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, "", err
	}
	return m.establish(ctx, res)
}

func (m *Manager) GoogleLogin(ctx context.Context, credential string) (*Session, string, error) {
	res, err := m.client.GoogleLogin(ctx, credential)
	if err != nil {
		return nil, "", err
	}
	return m.establish(ctx, res)
}

func (m *Manager) AppleLogin(ctx context.Context, idToken, nameHint string) (*Session, string, error) {
	res, err := m.client.AppleLogin(ctx, idToken, nameHint)
	if err != nil {
		return nil, "", err
	}
	return m.establish(ctx, res)
}

// Logout always clears local state. The remote revocation is
// fire-and-forget: a dead API must not trap the user in a session they
// asked to leave.
func (m *Manager) Logout(ctx context.Context, sess *Session) error {
	if !sess.Authenticated() {
		return nil
	}

	access := sess.AccessToken
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.client.Logout(ctx, access); err != nil {
			m.logger.Warn("remote logout failed", "error", err)
		}
	}()

	m.evictSession(sess.LocalID)
	err := m.store.Delete(sess.LocalID)
	sess.State = StateAnonymous
	sess.User = nil
	sess.Stats = nil
	sess.StatsState = StatsNotAvailable
	sess.AccessToken = ""
	return err
}

// RefreshStats re-fetches the stats snapshot. On failure the previous
// snapshot is kept and no error surfaces.
func (m *Manager) RefreshStats(ctx context.Context, sess *Session) {
	if !sess.Authenticated() {
		return
	}
	stats, err := m.client.GetUserStats(ctx, sess.AccessToken)
	if err != nil {
		m.logger.Debug("stats refresh failed", "error", err)
		return
	}
	sess.Stats = stats
	sess.StatsState = StatsLoaded
	sess.StatsAt = time.Now()
}

// SetDailyGoal sends the new goal and then refreshes stats
// unconditionally. The API error propagates to the caller.
func (m *Manager) SetDailyGoal(ctx context.Context, sess *Session, goal int) error {
	if !sess.Authenticated() {
		return nil
	}
	if err := m.client.SetDailyGoal(ctx, sess.AccessToken, goal); err != nil {
		return err
	}
	m.RefreshStats(ctx, sess)
	return nil
}

// tokenExpiringSoon inspects the access token's exp claim without
// verifying the signature; verification belongs to the API. Opaque
// tokens report false and rely on the 401 retry path instead.
func tokenExpiringSoon(access string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(access, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < 30*time.Second
}
