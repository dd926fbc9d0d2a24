package repository

import (
	"github.com/yukikurage/qa-forum/internal/database"
	"github.com/yukikurage/qa-forum/internal/utils"
	"gorm.io/gorm"
)

func paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	if params.Limit <= 0 {
		return func(db *gorm.DB) *gorm.DB { return db }
	}
	return database.Paginate(params)
}

func newest(table string) func(db *gorm.DB) *gorm.DB {
	return database.Newest(table)
}
