package client

import (
	"context"
	"encoding/json"
	"sync"
)

// User is the session's view of the authenticated account
type User struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	UserType    string `json:"user_type"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	IsActive    bool   `json:"is_active"`
}

// tokenPair mirrors the token endpoint response
type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Session holds the authenticated state of the SDK. State is rehydrated
// synchronously from storage on creation, so a process restart keeps
// its login. Any 401 from the API forces a logout and fires
// OnSessionExpired exactly once.
type Session struct {
	mu      sync.Mutex
	storage Storage
	client  *Client

	access  string
	refresh string
	user    *User

	// OnSessionExpired is called once when a 401 forces a logout
	OnSessionExpired func()
}

// NewSession creates a session against the API at baseURL, rehydrating
// any persisted login from storage
func NewSession(baseURL string, storage Storage) *Session {
	s := &Session{storage: storage}
	s.client = NewClient(baseURL, s.accessToken, s.forceLogout)

	// Synchronous rehydrate: a stale token is fine, the first 401
	// will force a logout
	if token, ok := storage.Get(KeyToken); ok {
		s.access = token
	}
	if refresh, ok := storage.Get(KeyRefresh); ok {
		s.refresh = refresh
	}
	if raw, ok := storage.Get(KeyUser); ok {
		var user User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			s.user = &user
		}
	}

	return s
}

// Client returns the authenticated API client
func (s *Session) Client() *Client {
	return s.client
}

// Login authenticates and persists the session: obtain the token pair,
// then fetch the profile
func (s *Session) Login(ctx context.Context, username, password string) error {
	var tokens tokenPair
	err := s.client.Post(ctx, "/token/", map[string]string{
		"username": username,
		"password": password,
	}, &tokens)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.access = tokens.Access
	s.refresh = tokens.Refresh
	s.mu.Unlock()

	var user User
	if err := s.client.Get(ctx, "/users/me/", nil, &user); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user

	s.storage.Set(KeyToken, tokens.Access)
	s.storage.Set(KeyRefresh, tokens.Refresh)
	if raw, err := json.Marshal(&user); err == nil {
		s.storage.Set(KeyUser, string(raw))
	}

	return nil
}

// Refresh exchanges the stored refresh token for a new pair
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	refresh := s.refresh
	s.mu.Unlock()

	var tokens tokenPair
	err := s.client.Post(ctx, "/token/refresh/", map[string]string{
		"refresh": refresh,
	}, &tokens)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = tokens.Access
	s.refresh = tokens.Refresh
	s.storage.Set(KeyToken, tokens.Access)
	s.storage.Set(KeyRefresh, tokens.Refresh)

	return nil
}

// Logout clears the persisted session. Local only: stored refresh
// tokens expire server-side on their own schedule.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// IsLoggedIn reports whether the session holds a token and profile
func (s *Session) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access != "" && s.user != nil
}

// CurrentUser returns the authenticated profile, or nil
func (s *Session) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAdmin reports admin capability: is_staff OR is_superuser, never
// user_type
func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && (s.user.IsStaff || s.user.IsSuperuser)
}

// ShortcutTipSeen reports whether the one-time shortcut tip was shown
func (s *Session) ShortcutTipSeen() bool {
	_, seen := s.storage.Get(KeyShortcutTipSeen)
	return seen
}

// MarkShortcutTipSeen persists the one-time shortcut tip flag
func (s *Session) MarkShortcutTipSeen() {
	s.storage.Set(KeyShortcutTipSeen, "true")
}

func (s *Session) accessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

// forceLogout clears the session on a 401. Fires OnSessionExpired
// exactly once; a no-op when already logged out.
func (s *Session) forceLogout() {
	s.mu.Lock()
	if s.access == "" && s.user == nil {
		s.mu.Unlock()
		return
	}
	s.clearLocked()
	hook := s.OnSessionExpired
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (s *Session) clearLocked() {
	s.access = ""
	s.refresh = ""
	s.user = nil
	s.storage.Delete(KeyToken)
	s.storage.Delete(KeyRefresh)
	s.storage.Delete(KeyUser)
}
