package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups every repository bound to the same database handle.
type Repositories struct {
	Users       UserRepository
	Companies   CompanyRepository
	Connections ConnectionRepository
	Jobs        JobRepository
	Media       MediaRepository
	Ads         AdRepository
	Tokens      TokenRepository
}

// NewRepositories binds all repositories to db.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:       NewUserRepository(db),
		Companies:   NewCompanyRepository(db),
		Connections: NewConnectionRepository(db),
		Jobs:        NewJobRepository(db),
		Media:       NewMediaRepository(db),
		Ads:         NewAdRepository(db),
		Tokens:      NewTokenRepository(db),
	}
}

// UnitOfWork runs a callback inside one transaction. The transaction commits when fn
// returns nil and rolls back when it returns an error or panics.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

// GormUnitOfWork is a GORM implementation of UnitOfWork
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new UnitOfWork
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
