package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/diewo77/gf-server/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Price is an optional exact price. It decodes from a JSON number, a numeric
// string (a single comma is read as the decimal separator), null or "".
type Price struct {
	decimal.NullDecimal
}

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		p.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("prix: %w", err)
		}
		s = strings.TrimSpace(unq)
		if s == "" {
			p.NullDecimal = decimal.NullDecimal{}
			return nil
		}
		if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("prix %s is not a number", s)
	}
	p.NullDecimal = decimal.NewNullDecimal(d)
	return nil
}

// LineInput is one uploaded line record. Every field is optional.
type LineInput struct {
	Reference   string         `json:"reference"`
	Designation string         `json:"designation"`
	Marque      string         `json:"marque"`
	Prix        Price          `json:"prix"`
	Fournisseur string         `json:"fournisseur"`
	Date        string         `json:"date"`
	Supplier    *SupplierInput `json:"supplier"`
}

// supplier returns the supplier to reconcile for the line. A missing or
// empty ({}) supplier object falls back to the free-text fournisseur field,
// or to the unknown-supplier placeholder. An object with members is used as
// sent, even when every member is blank.
func (in LineInput) supplier() SupplierInput {
	if in.Supplier != nil && !in.Supplier.empty() {
		return *in.Supplier
	}
	four := strings.TrimSpace(in.Fournisseur)
	return SupplierInput{Code: four, Name: firstNonBlank(four, UnknownSupplierName)}
}

// ErrSaveFailed wraps any failure inside the ingestion transaction.
var ErrSaveFailed = errors.New("save_failed")

type IngestService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewIngestService(db *gorm.DB, log *zap.Logger) *IngestService {
	if log == nil {
		log = zap.NewNop()
	}
	return &IngestService{db: db, log: log}
}

// Ingest stores items for clientID in a single transaction and returns how
// many lines were saved. Either every line is committed or none is.
func (s *IngestService) Ingest(ctx context.Context, clientID string, items []LineInput) (int, error) {
	saved := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, item := range items {
			supplierID, err := ReconcileSupplier(tx, clientID, item.supplier())
			if err != nil {
				return fmt.Errorf("line %d: %w", i, err)
			}
			line := models.Line{
				ClientID:    clientID,
				SupplierID:  &supplierID,
				Reference:   strings.TrimSpace(item.Reference),
				Designation: strings.TrimSpace(item.Designation),
				Marque:      strings.TrimSpace(item.Marque),
				Prix:        item.Prix.NullDecimal,
				Date:        NormalizeDate(item.Date),
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("line %d: insert: %w", i, err)
			}
			saved++
		}
		return nil
	})
	if err != nil {
		s.log.Error("ingest rolled back",
			zap.String("client_id", clientID),
			zap.Int("lines", len(items)),
			zap.Error(err))
		return 0, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	s.log.Info("lines ingested", zap.String("client_id", clientID), zap.Int("saved", saved))
	return saved, nil
}
