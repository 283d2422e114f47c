package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/olehks/content_studio/apperrors"
	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
)

// recordExpense appends one immutable financial record inside the caller's
// transaction. Every payment action funnels through here so there is a
// single place that writes to the ledger.
func recordExpense(tx *gorm.DB, category string, amount float64, description string, payee models.PayeeRef) (*models.FinancialRecord, error) {
	record := models.FinancialRecord{
		Type:        models.RecordExpense,
		Category:    category,
		Amount:      amount,
		Date:        time.Now(),
		Description: description,
		PayeeKind:   &payee.Kind,
		PayeeID:     &payee.ID,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &record, nil
}

// RecordManualEntry lets an admin book income or an off-workflow expense
// (platform revenue, rent, software). Records are never updated afterwards.
func RecordManualEntry(actor models.AuthContext, entryType, category string, amount float64, date time.Time, description string) (*models.FinancialRecord, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can record ledger entries")
	}
	if entryType != models.RecordIncome && entryType != models.RecordExpense {
		return nil, apperrors.Validation("entry type must be income or expense")
	}
	if amount <= 0 {
		return nil, apperrors.Validation("amount must be positive")
	}
	if category == "" {
		return nil, apperrors.Validation("category is required")
	}
	if date.IsZero() {
		date = time.Now()
	}

	record := models.FinancialRecord{
		Type:        entryType,
		Category:    category,
		Amount:      amount,
		Date:        date,
		Description: description,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return apperrors.Internal(err)
		}
		recordAudit(tx, actor, "ledger.manual_entry", "financial_record", record.ID, description)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

type LedgerFilter struct {
	Type     string
	Category string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

// ListLedger is a pure read over the append-only ledger.
func ListLedger(filter LedgerFilter) ([]models.FinancialRecord, int64, error) {
	query := database.DB.Model(&models.FinancialRecord{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	var records []models.FinancialRecord
	err := query.Order("date desc").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return records, total, nil
}
