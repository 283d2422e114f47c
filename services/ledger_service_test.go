package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehks/content_studio/apperrors"
	"github.com/olehks/content_studio/models"
)

func TestRecordManualEntryValidation(t *testing.T) {
	newTestDB(t)

	admin := adminCtx()
	_, err := RecordManualEntry(admin, "refund", "misc", 10, time.Time{}, "bad type")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	_, err = RecordManualEntry(admin, models.RecordExpense, "", 10, time.Time{}, "no category")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	_, err = RecordManualEntry(models.AuthContext{ActorID: uuid.New(), Role: models.RoleTeamMember},
		models.RecordExpense, "rent", 10, time.Time{}, "studio rent")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	record, err := RecordManualEntry(admin, models.RecordIncome, "sponsorship", 2000, time.Time{}, "August sponsor")
	require.NoError(t, err)
	assert.False(t, record.Date.IsZero())
	assert.Nil(t, record.PayeeID)
}

func TestListLedgerFilters(t *testing.T) {
	newTestDB(t)

	admin := adminCtx()
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	jul := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)

	_, err := RecordManualEntry(admin, models.RecordIncome, "sponsorship", 2000, jan, "winter sponsor")
	require.NoError(t, err)
	_, err = RecordManualEntry(admin, models.RecordExpense, "rent", 800, jan, "January rent")
	require.NoError(t, err)
	_, err = RecordManualEntry(admin, models.RecordExpense, "rent", 800, jul, "July rent")
	require.NoError(t, err)

	records, total, err := ListLedger(LedgerFilter{Type: models.RecordExpense})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, records, 2)
	// newest first
	assert.Equal(t, "July rent", records[0].Description)

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	records, total, err = ListLedger(LedgerFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "July rent", records[0].Description)

	records, total, err = ListLedger(LedgerFilter{Category: "sponsorship"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, models.RecordIncome, records[0].Type)

	_, total, err = ListLedger(LedgerFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
