package services

import (
	"context"
	"errors"
	"strings"

	"github.com/diewo77/gf-server/internal/db"
	"github.com/diewo77/gf-server/internal/models"
	"gorm.io/gorm"
)

// ListLimit caps the listing page.
const ListLimit = 500

var ErrNotFound = errors.New("not found")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPattern turns a user query into a lowercase LIKE pattern matching it
// as a literal substring. It returns "" when q carries no search term.
func SearchPattern(q string) string {
	term := strings.TrimSpace(strings.ToValidUTF8(q, ""))
	if term == "" {
		return ""
	}
	term = db.FoldCase(term)
	return "%" + likeEscaper.Replace(term) + "%"
}

// CatalogService answers the read-only browsing queries. Every query is
// scoped to one client.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(gdb *gorm.DB) *CatalogService {
	return &CatalogService{db: gdb}
}

func (s *CatalogService) joined(ctx context.Context, clientID string, cols string) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("lines AS l").
		Select("l.id, l.supplier_id, l.reference, l.designation, l.marque, l.prix, l.date, l.created_at, "+cols).
		Joins("LEFT JOIN suppliers s ON s.id = l.supplier_id AND s.client_id = l.client_id").
		Where("l.client_id = ?", clientID)
}

// ListLines returns the client's newest lines first, optionally filtered by
// q against reference, designation, brand and supplier name.
func (s *CatalogService) ListLines(ctx context.Context, clientID, q string) ([]models.LineRow, error) {
	query := s.joined(ctx, clientID, "s.name AS supplier_name")
	if pattern := SearchPattern(q); pattern != "" {
		query = query.Where(
			`(LOWER(l.reference) LIKE ? ESCAPE '\' OR LOWER(l.designation) LIKE ? ESCAPE '\' OR `+
				`LOWER(l.marque) LIKE ? ESCAPE '\' OR LOWER(s.name) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern, pattern)
	}
	rows := []models.LineRow{}
	if err := query.Order("l.id DESC").Limit(ListLimit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetLine returns one line of the client with its supplier contact.
func (s *CatalogService) GetLine(ctx context.Context, clientID string, id uint) (*models.LineRow, error) {
	var row models.LineRow
	err := s.joined(ctx, clientID, "s.name AS supplier_name, s.phone AS supplier_phone, s.email AS supplier_email").
		Where("l.id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetSupplier returns one supplier of the client.
func (s *CatalogService) GetSupplier(ctx context.Context, clientID string, id uint) (*models.Supplier, error) {
	var sup models.Supplier
	err := s.db.WithContext(ctx).Where("id = ? AND client_id = ?", id, clientID).Take(&sup).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sup, nil
}
