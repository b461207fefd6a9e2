package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a login of a user, referenced by the session cookie.
type Session struct {
	Token        string    `gorm:"primaryKey;size:64"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	User         User      `gorm:"constraint:OnDelete:CASCADE"`
	CSRFToken    string    `gorm:"size:64;not null"`
	ExpiresAt    time.Time `gorm:"index;not null"`
	LastActivity time.Time `gorm:"not null"`
	CreatedAt    time.Time
}

// NewToken returns a random hex encoded token.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("could not generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewSession creates a session for the user that expires after the duration.
func NewSession(db *gorm.DB, userID uuid.UUID, duration time.Duration) (Session, error) {
	token, err := NewToken()
	if err != nil {
		return Session{}, err
	}

	csrf, err := NewToken()
	if err != nil {
		return Session{}, err
	}

	now := time.Now().UTC()
	session := Session{
		Token:        token,
		UserID:       userID,
		CSRFToken:    csrf,
		ExpiresAt:    now.Add(duration),
		LastActivity: now,
	}

	err = db.Create(&session).Error
	if err != nil {
		return Session{}, err
	}

	return session, nil
}

// SessionByToken returns the session for the token with its user preloaded.
// Expired sessions are not found.
func SessionByToken(db *gorm.DB, token string) (Session, error) {
	var session Session

	err := db.Preload("User").Where("token = ?", token).First(&session).Error
	if err != nil {
		return Session{}, err
	}

	if !session.ExpiresAt.After(time.Now()) {
		return Session{}, fmt.Errorf("%w session matching your query", ErrResourceNotFound)
	}

	return session, nil
}

// NeedsRenewal reports whether less than half of the duration is left.
func (s Session) NeedsRenewal(duration time.Duration, now time.Time) bool {
	return s.ExpiresAt.Sub(now) < duration/2
}

// Renew extends the session to expire after the duration from now.
func (s *Session) Renew(db *gorm.DB, duration time.Duration) error {
	now := time.Now().UTC()

	expiresAt := now.Add(duration)

	err := db.Model(&Session{}).Where("token = ?", s.Token).Updates(Session{LastActivity: now, ExpiresAt: expiresAt}).Error
	if err != nil {
		return err
	}

	s.LastActivity = now
	s.ExpiresAt = expiresAt
	return nil
}

// DeleteSession removes the session with the token.
func DeleteSession(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&Session{}).Error
}

// CleanExpiredSessions removes all expired sessions.
func CleanExpiredSessions(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at <= ?", time.Now().UTC()).Delete(&Session{})
	return result.RowsAffected, result.Error
}
