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

func TestCreatePaymentRequestValidation(t *testing.T) {
	newTestDB(t)

	userID := uuid.New()
	voiceActor := seedVoiceActor(t, "Dmytro", &userID)
	owner := models.AuthContext{ActorID: userID, Role: models.RoleVoiceActor}
	payee := models.PayeeRef{Kind: models.PayeeVoiceActor, ID: voiceActor.ID}

	_, err := CreatePaymentRequest(owner, payee, "", 50, "mic stand")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	_, err = CreatePaymentRequest(owner, payee, "equipment", -50, "mic stand")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	_, err = CreatePaymentRequest(owner, payee, "equipment", 50, "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	request, err := CreatePaymentRequest(owner, payee, "equipment", 50, "mic stand")
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, request.Status)
}

func TestCreatePaymentRequestOwnershipEnforced(t *testing.T) {
	newTestDB(t)

	userID := uuid.New()
	voiceActor := seedVoiceActor(t, "Dmytro", &userID)
	payee := models.PayeeRef{Kind: models.PayeeVoiceActor, ID: voiceActor.ID}

	stranger := models.AuthContext{ActorID: uuid.New(), Role: models.RoleVoiceActor}
	_, err := CreatePaymentRequest(stranger, payee, "equipment", 50, "mic stand")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	// admins may raise on anyone's behalf
	_, err = CreatePaymentRequest(adminCtx(), payee, "equipment", 50, "mic stand")
	require.NoError(t, err)
}

func TestRejectPaymentRequestRequiresReason(t *testing.T) {
	newTestDB(t)

	userID := uuid.New()
	voiceActor := seedVoiceActor(t, "Dmytro", &userID)
	owner := models.AuthContext{ActorID: userID, Role: models.RoleVoiceActor}
	payee := models.PayeeRef{Kind: models.PayeeVoiceActor, ID: voiceActor.ID}

	request, err := CreatePaymentRequest(owner, payee, "equipment", 50, "mic stand")
	require.NoError(t, err)

	admin := adminCtx()
	_, err = RejectPaymentRequest(admin, request.ID, "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	reloaded, err := loadPaymentRequest(database.DB, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, reloaded.Status)

	rejected, err := RejectPaymentRequest(admin, request.ID, "no budget this month")
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "no budget this month", *rejected.RejectionReason)
}

func TestPaymentRequestLifecycle(t *testing.T) {
	newTestDB(t)

	userID := uuid.New()
	voiceActor := seedVoiceActor(t, "Dmytro", &userID)
	owner := models.AuthContext{ActorID: userID, Role: models.RoleVoiceActor}
	payee := models.PayeeRef{Kind: models.PayeeVoiceActor, ID: voiceActor.ID}

	request, err := CreatePaymentRequest(owner, payee, "equipment", 75, "new pop filter")
	require.NoError(t, err)

	admin := adminCtx()

	// paying straight from PENDING conflicts
	_, _, err = MarkPaymentRequestPaid(admin, request.ID, true)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))

	approved, err := ApprovePaymentRequest(admin, request.ID, "approved for Q3")
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	require.NotNil(t, approved.AdminNotes)

	// unconfirmed settlement is refused
	_, _, err = MarkPaymentRequestPaid(admin, request.ID, false)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
	assert.Equal(t, int64(0), ledgerCount(t))

	paid, record, err := MarkPaymentRequestPaid(admin, request.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	require.NotNil(t, record)
	assert.Equal(t, models.CategoryPaymentRequest, record.Category)
	assert.Equal(t, 75.0, record.Amount)
	require.NotNil(t, record.PayeeID)
	assert.Equal(t, voiceActor.ID, *record.PayeeID)

	_, _, err = MarkPaymentRequestPaid(admin, request.ID, true)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	assert.Equal(t, int64(1), ledgerCount(t))
}

func TestApprovePaymentRequestTwice(t *testing.T) {
	newTestDB(t)

	userID := uuid.New()
	voiceActor := seedVoiceActor(t, "Dmytro", &userID)
	owner := models.AuthContext{ActorID: userID, Role: models.RoleVoiceActor}
	payee := models.PayeeRef{Kind: models.PayeeVoiceActor, ID: voiceActor.ID}

	request, err := CreatePaymentRequest(owner, payee, "travel", 120, "train to the studio")
	require.NoError(t, err)

	admin := adminCtx()
	_, err = ApprovePaymentRequest(admin, request.ID, "")
	require.NoError(t, err)

	_, err = ApprovePaymentRequest(admin, request.ID, "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestDeletePaymentRequestRules(t *testing.T) {
	newTestDB(t)

	userID := uuid.New()
	voiceActor := seedVoiceActor(t, "Dmytro", &userID)
	owner := models.AuthContext{ActorID: userID, Role: models.RoleVoiceActor}
	payee := models.PayeeRef{Kind: models.PayeeVoiceActor, ID: voiceActor.ID}

	request, err := CreatePaymentRequest(owner, payee, "equipment", 50, "mic stand")
	require.NoError(t, err)

	stranger := models.AuthContext{ActorID: uuid.New(), Role: models.RoleVoiceActor}
	err = DeletePaymentRequest(stranger, request.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	require.NoError(t, DeletePaymentRequest(owner, request.ID))
	_, err = loadPaymentRequest(database.DB, request.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	// once approved, retraction is closed
	request, err = CreatePaymentRequest(owner, payee, "equipment", 50, "mic stand")
	require.NoError(t, err)
	_, err = ApprovePaymentRequest(adminCtx(), request.ID, "")
	require.NoError(t, err)

	err = DeletePaymentRequest(owner, request.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestListOwnPaymentRequests(t *testing.T) {
	newTestDB(t)

	userID := uuid.New()
	voiceActor := seedVoiceActor(t, "Dmytro", &userID)
	otherUser := uuid.New()
	other := seedVoiceActor(t, "Roman", &otherUser)

	owner := models.AuthContext{ActorID: userID, Role: models.RoleVoiceActor}
	_, err := CreatePaymentRequest(owner, models.PayeeRef{Kind: models.PayeeVoiceActor, ID: voiceActor.ID}, "equipment", 50, "mic stand")
	require.NoError(t, err)

	_, err = CreatePaymentRequest(adminCtx(), models.PayeeRef{Kind: models.PayeeVoiceActor, ID: other.ID}, "travel", 30, "bus fare")
	require.NoError(t, err)

	mine, err := ListOwnPaymentRequests(owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, voiceActor.ID, mine[0].PayeeID)

	all, err := ListPaymentRequests("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
