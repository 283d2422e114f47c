package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehks/content_studio/apperrors"
	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
)

func seedEntry(t *testing.T, status string, mutate func(*models.ContentRegistryEntry)) *models.ContentRegistryEntry {
	t.Helper()
	entry := &models.ContentRegistryEntry{Title: "Episode 12", Status: status}
	if mutate != nil {
		mutate(entry)
	}
	require.NoError(t, database.DB.Create(entry).Error)
	return entry
}

func TestCreateRegistryEntryVoicePayeeExclusive(t *testing.T) {
	newTestDB(t)

	voiceActor := seedVoiceActor(t, "Dmytro", nil)
	streamer := seedStreamer(t, "Iryna")

	_, err := CreateRegistryEntry(adminCtx(), "Episode 12", &voiceActor.ID, &streamer.ID, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	entry, err := CreateRegistryEntry(adminCtx(), "Episode 12", &voiceActor.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.EntryDraft, entry.Status)
	ref, ok := entry.VoicePayee()
	require.True(t, ok)
	assert.Equal(t, models.PayeeVoiceActor, ref.Kind)
}

func TestAdvanceEntryStatusAdjacentOnly(t *testing.T) {
	newTestDB(t)

	entry := seedEntry(t, models.EntryDraft, nil)

	admin := adminCtx()
	entry, err := AdvanceEntryStatus(admin, entry.ID, models.EntryScriptReady)
	require.NoError(t, err)
	assert.Equal(t, models.EntryScriptReady, entry.Status)

	_, err = AdvanceEntryStatus(admin, entry.ID, models.EntryReview)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))

	_, err = AdvanceEntryStatus(admin, entry.ID, "SHIPPED")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestArchiveEntryFromAnywhereAdminOnly(t *testing.T) {
	newTestDB(t)

	entry := seedEntry(t, models.EntryEditing, nil)

	teamCtx := models.AuthContext{ActorID: uuid.New(), Role: models.RoleTeamMember}
	_, err := AdvanceEntryStatus(teamCtx, entry.ID, models.EntryArchived)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	archived, err := AdvanceEntryStatus(adminCtx(), entry.ID, models.EntryArchived)
	require.NoError(t, err)
	assert.Equal(t, models.EntryArchived, archived.Status)
}

func TestSetEntryPriceGatedOnReview(t *testing.T) {
	newTestDB(t)

	entry := seedEntry(t, models.EntryEditing, nil)

	admin := adminCtx()
	_, err := SetEntryPrice(admin, entry.ID, LiabilityVoice, 300)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))

	require.NoError(t, database.DB.Model(entry).Update("status", models.EntryReview).Error)

	priced, err := SetEntryPrice(admin, entry.ID, LiabilityVoice, 300)
	require.NoError(t, err)
	require.NotNil(t, priced.VoicePrice)
	assert.Equal(t, 300.0, *priced.VoicePrice)
	assert.Nil(t, priced.EditPrice)
}

func TestSetEntryPriceOnPaidLiability(t *testing.T) {
	newTestDB(t)

	price := 300.0
	entry := seedEntry(t, models.EntryPublished, func(e *models.ContentRegistryEntry) {
		e.VoicePrice = &price
		e.VoicePaid = true
	})

	_, err := SetEntryPrice(adminCtx(), entry.ID, LiabilityVoice, 400)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestMarkEntryLiabilityPaidRequiresPublished(t *testing.T) {
	newTestDB(t)

	voiceActor := seedVoiceActor(t, "Dmytro", nil)
	price := 300.0
	entry := seedEntry(t, models.EntryReview, func(e *models.ContentRegistryEntry) {
		e.VoiceActorID = &voiceActor.ID
		e.VoicePrice = &price
	})

	_, _, err := MarkEntryLiabilityPaid(adminCtx(), entry.ID, LiabilityVoice)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	assert.Equal(t, int64(0), ledgerCount(t))
}

func TestLiabilitiesSettleIndependently(t *testing.T) {
	newTestDB(t)

	voiceActor := seedVoiceActor(t, "Dmytro", nil)
	editor := seedEditor(t, "Pavlo")
	voicePrice, editPrice := 300.0, 150.0
	entry := seedEntry(t, models.EntryPublished, func(e *models.ContentRegistryEntry) {
		e.VoiceActorID = &voiceActor.ID
		e.EditorID = &editor.ID
		e.VoicePrice = &voicePrice
		e.EditPrice = &editPrice
	})

	admin := adminCtx()
	entry, record, err := MarkEntryLiabilityPaid(admin, entry.ID, LiabilityVoice)
	require.NoError(t, err)
	assert.True(t, entry.VoicePaid)
	assert.False(t, entry.EditPaid)
	assert.Equal(t, models.CategoryVoice, record.Category)
	assert.Equal(t, 300.0, record.Amount)
	require.NotNil(t, record.PayeeKind)
	assert.Equal(t, models.PayeeVoiceActor, *record.PayeeKind)

	entry, record, err = MarkEntryLiabilityPaid(admin, entry.ID, LiabilityEdit)
	require.NoError(t, err)
	assert.True(t, entry.EditPaid)
	assert.Equal(t, models.CategoryEdit, record.Category)
	require.NotNil(t, record.PayeeKind)
	assert.Equal(t, models.PayeeTeamMember, *record.PayeeKind)

	_, _, err = MarkEntryLiabilityPaid(admin, entry.ID, LiabilityVoice)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	assert.Equal(t, int64(2), ledgerCount(t))
}

func TestMarkEntryLiabilityPaidStreamerVoice(t *testing.T) {
	newTestDB(t)

	streamer := seedStreamer(t, "Iryna")
	price := 200.0
	entry := seedEntry(t, models.EntryPublished, func(e *models.ContentRegistryEntry) {
		e.StreamerID = &streamer.ID
		e.VoicePrice = &price
	})

	_, record, err := MarkEntryLiabilityPaid(adminCtx(), entry.ID, LiabilityVoice)
	require.NoError(t, err)
	require.NotNil(t, record.PayeeKind)
	assert.Equal(t, models.PayeeStreamer, *record.PayeeKind)
	require.NotNil(t, record.PayeeID)
	assert.Equal(t, streamer.ID, *record.PayeeID)
}

func TestMarkEntryLiabilityPaidPreconditions(t *testing.T) {
	newTestDB(t)

	voiceActor := seedVoiceActor(t, "Dmytro", nil)
	entry := seedEntry(t, models.EntryPublished, func(e *models.ContentRegistryEntry) {
		e.VoiceActorID = &voiceActor.ID
	})

	// no editor assigned
	_, _, err := MarkEntryLiabilityPaid(adminCtx(), entry.ID, LiabilityEdit)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePrecondition))

	// payee present, price missing
	_, _, err = MarkEntryLiabilityPaid(adminCtx(), entry.ID, LiabilityVoice)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePrecondition))
	assert.Equal(t, int64(0), ledgerCount(t))
}
