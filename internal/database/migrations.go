package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cannaconnect/cannaconnect-api/internal/logger"
)

type index struct {
	table   string
	name    string
	columns string
}

// Ordering indexes for the listing queries. Uniqueness and foreign-key indexes are
// declared on the models.
var listingIndexes = []index{
	{"job_postings", "idx_job_postings_created_at", "created_at"},
	{"job_comments", "idx_job_comments_job_created", "job_id, created_at"},
	{"job_applications", "idx_job_applications_applied_at", "applied_at"},
	{"connections", "idx_connections_created_at", "created_at"},
	{"advertisements", "idx_advertisements_created_at", "created_at"},
	{"user_images", "idx_user_images_uploaded_at", "uploaded_at"},
}

// AddIndexes adds the listing indexes that are not yet present.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range listingIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			logger.L().Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.L().Info("Created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.String("columns", idx.columns),
		)
	}

	return nil
}

// MigrateDatabase runs the migrations that follow AutoMigrate.
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	return nil
}
