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

func TestDebtSummaryUnknownPayee(t *testing.T) {
	newTestDB(t)

	_, err := GetDebtSummary(models.PayeeRef{Kind: models.PayeeStreamer, ID: uuid.New()})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	_, err = GetDebtSummary(models.PayeeRef{Kind: "sponsor", ID: uuid.New()})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestDebtSummaryStreamerOldestFirst(t *testing.T) {
	newTestDB(t)

	streamer := seedStreamer(t, "Iryna")
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedStream(t, streamer.ID, "Friday stream", base.AddDate(0, 0, 2), 80)
	seedStream(t, streamer.ID, "Monday stream", base, 100)
	paid := seedStream(t, streamer.ID, "Settled stream", base.AddDate(0, 0, 1), 999)
	require.NoError(t, database.DB.Model(paid).Update("payment_status", models.StreamPaymentPaid).Error)

	// a published voice liability attributed to the streamer joins the list
	price := 50.0
	entry := &models.ContentRegistryEntry{
		Title:      "Highlights reel",
		Status:     models.EntryPublished,
		StreamerID: &streamer.ID,
		VoicePrice: &price,
	}
	require.NoError(t, database.DB.Create(entry).Error)

	summary, err := GetDebtSummary(models.PayeeRef{Kind: models.PayeeStreamer, ID: streamer.ID})
	require.NoError(t, err)
	require.Len(t, summary.Items, 3)
	assert.Equal(t, 230.0, summary.Total)
	assert.Equal(t, "Monday stream", summary.Items[0].Title)
	assert.Equal(t, "Friday stream", summary.Items[1].Title)
	assert.Equal(t, "voice", summary.Items[2].Type)
	for i := 1; i < len(summary.Items); i++ {
		assert.False(t, summary.Items[i].Date.Before(summary.Items[i-1].Date))
	}
}

func TestDebtSummaryExcludesUnpricedAndUnpublished(t *testing.T) {
	newTestDB(t)

	voiceActor := seedVoiceActor(t, "Dmytro", nil)
	price := 120.0

	entries := []*models.ContentRegistryEntry{
		{Title: "Published priced", Status: models.EntryPublished, VoiceActorID: &voiceActor.ID, VoicePrice: &price},
		{Title: "Published unpriced", Status: models.EntryPublished, VoiceActorID: &voiceActor.ID},
		{Title: "Still in review", Status: models.EntryReview, VoiceActorID: &voiceActor.ID, VoicePrice: &price},
		{Title: "Already paid", Status: models.EntryPublished, VoiceActorID: &voiceActor.ID, VoicePrice: &price, VoicePaid: true},
	}
	for _, e := range entries {
		require.NoError(t, database.DB.Create(e).Error)
	}

	summary, err := GetDebtSummary(models.PayeeRef{Kind: models.PayeeVoiceActor, ID: voiceActor.ID})
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Published priced", summary.Items[0].Title)
	assert.Equal(t, 120.0, summary.Total)
}

func TestDebtSummaryContentCreatorEmpty(t *testing.T) {
	newTestDB(t)

	creator := seedCreator(t, "Olya", nil)
	summary, err := GetDebtSummary(models.PayeeRef{Kind: models.PayeeContentCreator, ID: creator.ID})
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
	assert.Zero(t, summary.Total)
}

func TestPortfolioSummaryTotalsAndOrdering(t *testing.T) {
	newTestDB(t)

	busy := seedStreamer(t, "Iryna")
	quiet := seedStreamer(t, "Taras")
	editor := seedEditor(t, "Pavlo")

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedStream(t, busy.ID, "Stream one", base, 100)
	seedStream(t, busy.ID, "Stream two", base.AddDate(0, 0, 1), 150)

	editPrice := 60.0
	entry := &models.ContentRegistryEntry{
		Title:     "Montage",
		Status:    models.EntryPublished,
		EditorID:  &editor.ID,
		EditPrice: &editPrice,
	}
	require.NoError(t, database.DB.Create(entry).Error)

	rows, err := GetPortfolioSummary(false)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, busy.ID, rows[0].Payee.ID)
	assert.Equal(t, 250.0, rows[0].Total)
	assert.Equal(t, 2, rows[0].ItemCount)
	assert.Equal(t, editor.ID, rows[1].Payee.ID)
	assert.Equal(t, 60.0, rows[1].Total)
	assert.Equal(t, quiet.ID, rows[2].Payee.ID)
	assert.Zero(t, rows[2].Total)

	var grandTotal float64
	for _, row := range rows {
		grandTotal += row.Total
	}
	assert.Equal(t, 310.0, grandTotal)

	active, err := GetPortfolioSummary(true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, row := range active {
		assert.Greater(t, row.Total, 0.0)
	}
}
