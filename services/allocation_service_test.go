package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehks/content_studio/apperrors"
	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
)

func TestAllocatePaymentOldestFirst(t *testing.T) {
	newTestDB(t)

	streamer := seedStreamer(t, "Iryna")
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	first := seedStream(t, streamer.ID, "Day one", base, 100)
	second := seedStream(t, streamer.ID, "Day two", base.AddDate(0, 0, 1), 150)
	third := seedStream(t, streamer.ID, "Day three", base.AddDate(0, 0, 2), 80)

	payee := models.PayeeRef{Kind: models.PayeeStreamer, ID: streamer.ID}
	result, err := AllocatePayment(adminCtx(), payee, 250)
	require.NoError(t, err)

	require.Len(t, result.PaidItems, 2)
	assert.Equal(t, first.ID, result.PaidItems[0].ID)
	assert.Equal(t, second.ID, result.PaidItems[1].ID)

	require.NotNil(t, result.Record)
	assert.Equal(t, models.CategoryBulkPayment, result.Record.Category)
	assert.Equal(t, 250.0, result.Record.Amount)
	assert.Equal(t, int64(1), ledgerCount(t))

	var remaining models.Stream
	require.NoError(t, database.DB.First(&remaining, "id = ?", third.ID).Error)
	assert.Equal(t, models.StreamPaymentPending, remaining.PaymentStatus)

	summary, err := GetDebtSummary(payee)
	require.NoError(t, err)
	assert.Equal(t, 80.0, summary.Total)
}

func TestAllocatePaymentOverTender(t *testing.T) {
	newTestDB(t)

	streamer := seedStreamer(t, "Iryna")
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedStream(t, streamer.ID, "Day one", base, 100)
	seedStream(t, streamer.ID, "Day two", base.AddDate(0, 0, 1), 150)
	seedStream(t, streamer.ID, "Day three", base.AddDate(0, 0, 2), 80)

	payee := models.PayeeRef{Kind: models.PayeeStreamer, ID: streamer.ID}
	_, err := AllocatePayment(adminCtx(), payee, 400)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	// nothing moved
	assert.Equal(t, int64(0), ledgerCount(t))
	var pending int64
	require.NoError(t, database.DB.Model(&models.Stream{}).
		Where("payment_status = ?", models.StreamPaymentPending).
		Count(&pending).Error)
	assert.Equal(t, int64(3), pending)
}

func TestAllocatePaymentWholeItemsOnly(t *testing.T) {
	newTestDB(t)

	streamer := seedStreamer(t, "Iryna")
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	first := seedStream(t, streamer.ID, "Day one", base, 100)
	second := seedStream(t, streamer.ID, "Day two", base.AddDate(0, 0, 1), 150)

	payee := models.PayeeRef{Kind: models.PayeeStreamer, ID: streamer.ID}
	result, err := AllocatePayment(adminCtx(), payee, 120)
	require.NoError(t, err)

	require.Len(t, result.PaidItems, 1)
	assert.Equal(t, first.ID, result.PaidItems[0].ID)
	assert.Equal(t, 120.0, result.Record.Amount)

	var untouched models.Stream
	require.NoError(t, database.DB.First(&untouched, "id = ?", second.ID).Error)
	assert.Equal(t, models.StreamPaymentPending, untouched.PaymentStatus)
}

func TestAllocatePaymentMixedSources(t *testing.T) {
	newTestDB(t)

	streamer := seedStreamer(t, "Iryna")
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedStream(t, streamer.ID, "Day one", base.AddDate(0, 0, 5), 100)

	price := 40.0
	entry := &models.ContentRegistryEntry{
		Title:      "Highlights reel",
		Status:     models.EntryPublished,
		StreamerID: &streamer.ID,
		VoicePrice: &price,
	}
	require.NoError(t, database.DB.Create(entry).Error)

	payee := models.PayeeRef{Kind: models.PayeeStreamer, ID: streamer.ID}
	result, err := AllocatePayment(adminCtx(), payee, 140)
	require.NoError(t, err)
	require.Len(t, result.PaidItems, 2)

	var reloaded models.ContentRegistryEntry
	require.NoError(t, database.DB.First(&reloaded, "id = ?", entry.ID).Error)
	assert.True(t, reloaded.VoicePaid)

	summary, err := GetDebtSummary(payee)
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
}

func TestAllocatePaymentGuards(t *testing.T) {
	newTestDB(t)

	streamer := seedStreamer(t, "Iryna")
	payee := models.PayeeRef{Kind: models.PayeeStreamer, ID: streamer.ID}

	_, err := AllocatePayment(models.AuthContext{ActorID: uuid.New(), Role: models.RoleStreamer}, payee, 100)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	_, err = AllocatePayment(adminCtx(), payee, 0)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}
