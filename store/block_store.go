package store

import (
	"github.com/buddylink/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockStore owns the directed block relation. The messaging core only ever
// reads it; the block handlers write it.
type BlockStore struct {
	DB *gorm.DB
}

// BlockedBy reports whether other has blocked user.
func (s *BlockStore) BlockedBy(userID, otherID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", otherID, userID).
		Count(&count).Error
	return count > 0, err
}

// HasBlocked reports whether user has blocked other.
func (s *BlockStore) HasBlocked(userID, otherID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", userID, otherID).
		Count(&count).Error
	return count > 0, err
}

// Block records blocker blocking blocked. Re-blocking an already blocked
// user is a no-op thanks to the unique pair index.
func (s *BlockStore) Block(blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrSelfBlock
	}
	block := models.Block{BlockerID: blockerID, BlockedID: blockedID}
	if err := s.DB.Create(&block).Error; err != nil {
		if already, ferr := s.HasBlocked(blockerID, blockedID); ferr == nil && already {
			return nil
		}
		return err
	}
	return nil
}

func (s *BlockStore) Unblock(blockerID, blockedID uuid.UUID) error {
	return s.DB.
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error
}
