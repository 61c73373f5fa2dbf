package repository

import (
	"github.com/cannaconnect/cannaconnect-api/internal/database"
	"github.com/cannaconnect/cannaconnect-api/internal/models"
	"gorm.io/gorm"
)

// GormConnectionRepository is a GORM implementation of ConnectionRepository
type GormConnectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &GormConnectionRepository{db: db}
}

func (r *GormConnectionRepository) Create(conn *models.Connection) error {
	return r.db.Create(conn).Error
}

func (r *GormConnectionRepository) FindByID(id uint64) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.First(&conn, id).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}

// FindPair finds the connection from requester to target
func (r *GormConnectionRepository) FindPair(requesterID, targetID uint64) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.Where("user_id = ? AND connected_user_id = ?", requesterID, targetID).
		First(&conn).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *GormConnectionRepository) UpdateStatus(id uint64, status models.ConnectionStatus) error {
	return r.db.Model(&models.Connection{ID: id}).Update("status", status).Error
}

func (r *GormConnectionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Connection{}, id).Error
}

// ListConnected lists connected rows on either side of the user
func (r *GormConnectionRepository) ListConnected(userID uint64) ([]models.Connection, error) {
	var conns []models.Connection
	err := r.db.
		Where("status = ?", models.ConnectionConnected).
		Where("user_id = ? OR connected_user_id = ?", userID, userID).
		Preload("User").
		Preload("ConnectedUser").
		Scopes(database.NewestFirst("created_at")).
		Find(&conns).Error
	return conns, err
}

// ListPending lists pending requests addressed to the user, newest first
func (r *GormConnectionRepository) ListPending(targetID uint64) ([]models.Connection, error) {
	var conns []models.Connection
	err := r.db.
		Where("connected_user_id = ? AND status = ?", targetID, models.ConnectionPending).
		Preload("User").
		Scopes(database.NewestFirst("created_at")).
		Find(&conns).Error
	return conns, err
}

func (r *GormConnectionRepository) CreateFavorite(fav *models.FavoriteConnect) error {
	return r.db.Create(fav).Error
}

func (r *GormConnectionRepository) FindFavorite(id uint64) (*models.FavoriteConnect, error) {
	var fav models.FavoriteConnect
	if err := r.db.First(&fav, id).Error; err != nil {
		return nil, err
	}
	return &fav, nil
}

// ListFavorites lists the user's favorites, newest first, favorited user preloaded
func (r *GormConnectionRepository) ListFavorites(userID uint64) ([]models.FavoriteConnect, error) {
	var favs []models.FavoriteConnect
	err := r.db.
		Where("user_id = ?", userID).
		Preload("FavoriteUser").
		Scopes(database.NewestFirst("created_at")).
		Find(&favs).Error
	return favs, err
}

func (r *GormConnectionRepository) DeleteFavorite(id uint64) error {
	return r.db.Delete(&models.FavoriteConnect{}, id).Error
}
