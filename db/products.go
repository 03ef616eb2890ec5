package db

import (
	"fmt"
	"strings"

	"finlife/catalog"
	"finlife/models"

	"github.com/jinzhu/gorm"
)

// ProductStore é o repositório de produtos/opções sobre o gorm.
type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order("rate_options.term_months asc, rate_options.id asc")
}

// likePattern escapa os curingas do LIKE e devolve %termo% em minúsculas.
func likePattern(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}

func (s *ProductStore) Get(code string) (models.Product, error) {
	var p models.Product
	err := s.db.Preload("Options", orderedOptions).Where("code = ?", code).First(&p).Error
	if gorm.IsRecordNotFoundError(err) {
		return p, catalog.ErrNotFound
	}
	return p, err
}

// List aplica os filtros no SQL. Com filtro de prazo o join com rate_options
// pode repetir o produto (um por opção compatível); quem deduplica é o catalog.Engine.
// No sqlite o LOWER só conhece ASCII, então banco/busca são filtrados aqui em Go.
func (s *ProductStore) List(f catalog.Filters) ([]models.Product, error) {
	q := s.db.Preload("Options", orderedOptions).Select("products.*")

	foldInGo := s.db.Dialect().GetName() == "sqlite3"
	if !foldInGo {
		if f.Bank != "" {
			q = q.Where(`LOWER(products.company) LIKE ? ESCAPE '\'`, likePattern(f.Bank))
		}
		if f.Search != "" {
			p := likePattern(f.Search)
			q = q.Where(`(LOWER(products.company) LIKE ? ESCAPE '\' OR LOWER(products.name) LIKE ? ESCAPE '\')`, p, p)
		}
	}
	if f.Term != nil {
		q = q.Joins("JOIN rate_options ON rate_options.product_id = products.id").
			Where("rate_options.term_months = ?", *f.Term)
	}

	var out []models.Product
	if err := q.Order("products.id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if foldInGo {
		out = filterText(out, f)
	}
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}

// filterText aplica bank/search sem diferenciar maiúsculas (Unicode).
func filterText(products []models.Product, f catalog.Filters) []models.Product {
	bank := strings.ToLower(strings.TrimSpace(f.Bank))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if bank == "" && search == "" {
		return products
	}
	out := products[:0]
	for _, p := range products {
		if bank != "" && !containsFold(p.Company, bank) {
			continue
		}
		if search != "" && !containsFold(p.Company, search) && !containsFold(p.Name, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *ProductStore) ListByCodes(codes []string) ([]models.Product, error) {
	var out []models.Product
	if len(codes) == 0 {
		return out, nil
	}
	if err := s.db.Preload("Options", orderedOptions).
		Where("code IN (?)", codes).
		Order("id asc").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list products by code: %w", err)
	}
	return out, nil
}

func (s *ProductStore) ListEmbedded() ([]models.Product, error) {
	var out []models.Product
	if err := s.db.Preload("Options", orderedOptions).
		Where("embedding IS NOT NULL AND embedding <> ''").
		Order("id asc").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list embedded products: %w", err)
	}
	return out, nil
}

// ListForEmbedding devolve os produtos a (re)embedar: sem vetor, ou todos se all.
func (s *ProductStore) ListForEmbedding(all bool) ([]models.Product, error) {
	q := s.db.Order("id asc")
	if !all {
		q = q.Where("embedding IS NULL OR embedding = ''")
	}
	var out []models.Product
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list products for embedding: %w", err)
	}
	return out, nil
}

// UpsertProduct insere o produto se o código ainda não existe. Produto
// existente não é alterado; p.ID é preenchido nos dois casos.
func (s *ProductStore) UpsertProduct(p *models.Product) (bool, error) {
	var existing models.Product
	err := s.db.Where("code = ?", p.Code).First(&existing).Error
	if err == nil {
		p.ID = existing.ID
		return false, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return false, err
	}

	// opções entram via UpsertOption
	opts := p.Options
	p.Options = nil
	err = s.db.Create(p).Error
	p.Options = opts
	if err != nil {
		return false, fmt.Errorf("create product %s: %w", p.Code, err)
	}
	return true, nil
}

// UpsertOption insere a opção salvo se (produto, prazo, tipo de taxa) já existe.
func (s *ProductStore) UpsertOption(o *models.RateOption) (bool, error) {
	var count int
	if err := s.db.Model(&models.RateOption{}).
		Where("product_id = ? AND term_months = ? AND rate_type = ?", o.ProductID, o.TermMonths, o.RateType).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := s.db.Create(o).Error; err != nil {
		return false, fmt.Errorf("create option %s/%d/%s: %w", o.ProductCode, o.TermMonths, o.RateType, err)
	}
	return true, nil
}

func (s *ProductStore) SetEmbedding(code string, vec []float64) error {
	enc, err := models.EncodeVector(vec)
	if err != nil {
		return err
	}
	res := s.db.Model(&models.Product{}).Where("code = ?", code).Update("embedding", enc)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Delete remove o produto e suas opções. Memberships que apontam para ele
// ficam penduradas de propósito.
func (s *ProductStore) Delete(code string) error {
	var p models.Product
	if err := s.db.Where("code = ?", code).First(&p).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return catalog.ErrNotFound
		}
		return err
	}

	tx := s.db.Begin()
	if err := tx.Where("product_id = ?", p.ID).Delete(&models.RateOption{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&p).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
