package repositories

import (
	"errors"
	"fmt"

	"finch/internal/models"

	"gorm.io/gorm"
)

var ErrCardNotFound = errors.New("card not found")

// CardRepository defines the interface for card-related database operations
type CardRepository interface {
	Create(card *models.Card) error
	GetByID(id uint) (*models.Card, error)
	GetByUserID(userID uint) ([]models.Card, error)
	GetActiveByUserAndKind(userID uint, kinds ...string) ([]models.Card, error)
	Update(card *models.Card) error
	Delete(id uint) error
}

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(card *models.Card) error {
	if err := r.db.Create(card).Error; err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (r *cardRepository) GetByID(id uint) (*models.Card, error) {
	var card models.Card
	if err := r.db.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

func (r *cardRepository) GetByUserID(userID uint) ([]models.Card, error) {
	var cards []models.Card
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (r *cardRepository) GetActiveByUserAndKind(userID uint, kinds ...string) ([]models.Card, error) {
	var cards []models.Card
	q := r.db.Where("user_id = ? AND status = ?", userID, "active")
	if len(kinds) > 0 {
		q = q.Where("kind IN ?", kinds)
	}
	if err := q.Order("created_at DESC").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (r *cardRepository) Update(card *models.Card) error {
	if err := r.db.Save(card).Error; err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	return nil
}

func (r *cardRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Card{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}
