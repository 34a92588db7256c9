package auth

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/kirovest/sales-app/models"
	"github.com/kirovest/sales-app/utils"
)

// Store keys, matching the keys the app has always persisted under.
const (
	TokenKey = "auth_token"
	RoleKey  = "user_role"
)

// Session is the login-state gate. It restores the persisted credential at
// startup and hands the bearer token to every authenticated call. A missing
// token is a precondition failure, reported before any network I/O.
type Session struct {
	db *gorm.DB

	mu       sync.RWMutex
	token    string
	role     string
	loggedIn bool
}

// NewSession opens the gate over the local store. Role and token must both be
// present to restore a login; a half-written pair is wiped so the app starts
// logged out instead of in a broken state.
func NewSession(db *gorm.DB) (*Session, error) {
	if err := db.AutoMigrate(&models.Credential{}); err != nil {
		return nil, err
	}

	s := &Session{db: db}

	role, err := s.readValue(RoleKey)
	if err != nil {
		return nil, err
	}
	token, err := s.readValue(TokenKey)
	if err != nil {
		return nil, err
	}

	if role != "" && token != "" {
		s.role = role
		s.token = token
		s.loggedIn = true
		return s, nil
	}

	if err := s.clearValues(); err != nil {
		return nil, err
	}
	return s, nil
}

// Login stores role and token together and flips the gate open.
func (s *Session) Login(role, token string) error {
	if role == "" || token == "" {
		return errors.New("invalid role or token provided")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range map[string]string{TokenKey: token, RoleKey: role} {
			if err := tx.Save(&models.Credential{Key: key, Value: value}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.role = role
	s.loggedIn = true
	s.mu.Unlock()
	return nil
}

// Logout clears the persisted credential and closes the gate.
func (s *Session) Logout() error {
	if err := s.clearValues(); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = ""
	s.role = ""
	s.loggedIn = false
	s.mu.Unlock()
	return nil
}

// Token returns the bearer token, or an AuthError when nobody is logged in.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", utils.NewAuthError("user not authenticated")
	}
	return s.token, nil
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// Claims decodes the stored token's claims (role, expiry) without verifying
// the signature; verification is the backend's job.
func (s *Session) Claims() (*utils.CustomClaims, error) {
	token, err := s.Token()
	if err != nil {
		return nil, err
	}
	return utils.DecodeClaims(token)
}

func (s *Session) readValue(key string) (string, error) {
	var cred models.Credential
	err := s.db.First(&cred, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return cred.Value, nil
}

func (s *Session) clearValues() error {
	return s.db.Delete(&models.Credential{}, "key IN ?", []string{TokenKey, RoleKey}).Error
}
