package repository

import (
	"time"

	"github.com/supplychainlens/monitoring-api/internal/models"
	"gorm.io/gorm"
)

// GormSessionRepository is a GORM implementation of SessionRepository
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &GormSessionRepository{db: db}
}

// Create persists a session row for an issued token
func (r *GormSessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

// FindLiveByTokenHash finds a non-expired session by token hash. Expiry is
// checked in the query rather than in Go so an expired-but-present row can
// never authenticate; expired rows are swept lazily, not here.
func (r *GormSessionRepository) FindLiveByTokenHash(tokenHash string, now time.Time) (*models.Session, error) {
	var session models.Session
	if err := r.db.Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByTokenHash revokes the session backing a token
func (r *GormSessionRepository) DeleteByTokenHash(tokenHash string) error {
	return r.db.Where("token_hash = ?", tokenHash).Delete(&models.Session{}).Error
}

// DeleteByUserID revokes every session of a user
func (r *GormSessionRepository) DeleteByUserID(userID uint64) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}
