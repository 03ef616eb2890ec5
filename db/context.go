package db

import (
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

const dbKey = "db"

// Use este middleware no setup do gin
func SetDBtoContext(database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, database)
		c.Next()
	}
}

func DBInstance(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbKey)
	if !ok {
		return nil
	}
	db, _ := v.(*gorm.DB)
	return db
}

// Stores agrupa os stores de uma requisição, todos sobre o mesmo *gorm.DB.
type Stores struct {
	DB       *gorm.DB
	Products *ProductStore
	Ledger   *LedgerStore
	Spot     *SpotPriceStore
}

func NewStores(db *gorm.DB) Stores {
	return Stores{
		DB:       db,
		Products: NewProductStore(db),
		Ledger:   NewLedgerStore(db),
		Spot:     NewSpotPriceStore(db),
	}
}

// StoresFrom monta os stores sobre o DB do contexto; ok é false sem DB.
func StoresFrom(c *gin.Context) (Stores, bool) {
	db := DBInstance(c)
	if db == nil {
		return Stores{}, false
	}
	return NewStores(db), true
}
