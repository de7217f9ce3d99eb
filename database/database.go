package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db              *gorm.DB
	userRepo        *UserRepo
	categoryRepo    *CategoryRepo
	projectRepo     *ProjectRepo
	projectFileRepo *ProjectFileRepo
	serviceRepo     *ServiceRepo
	faqRepo         *FaqRepo
	heroSliderRepo  *HeroSliderRepo
	contactRepo     *ContactRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:              db,
		userRepo:        NewUserRepo(db),
		categoryRepo:    NewCategoryRepo(db),
		projectRepo:     NewProjectRepo(db),
		projectFileRepo: NewProjectFileRepo(db),
		serviceRepo:     NewServiceRepo(db),
		faqRepo:         NewFaqRepo(db),
		heroSliderRepo:  NewHeroSliderRepo(db),
		contactRepo:     NewContactRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectFileRepo() *ProjectFileRepo {
	return d.projectFileRepo
}

func (d Database) ServiceRepo() *ServiceRepo {
	return d.serviceRepo
}

func (d Database) FaqRepo() *FaqRepo {
	return d.faqRepo
}

func (d Database) HeroSliderRepo() *HeroSliderRepo {
	return d.heroSliderRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

// Primary returns a Database whose reads go to the primary even when read replicas are
// registered. Writes and transactions always use the primary.
func (d Database) Primary() Database {
	return New(d.db.Clauses(dbresolver.Write).Session(&gorm.Session{}))
}

// Transaction runs fn with a Database whose repositories all share one transaction.
// Returning an error from fn rolls the transaction back.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping checks that the primary connection is alive.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey reports whether err is a unique constraint violation, with or without
// gorm's error translation enabled.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
