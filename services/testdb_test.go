package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/olehks/content_studio/database"
	"github.com/olehks/content_studio/models"
)

// newTestDB points the package's shared handle at a fresh in-memory
// database scoped to the running test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Streamer{},
		&models.VoiceActor{},
		&models.TeamMember{},
		&models.ContentCreator{},
		&models.Stream{},
		&models.VoiceoverScript{},
		&models.ContentRegistryEntry{},
		&models.PaymentRequest{},
		&models.FinancialRecord{},
		&models.AuditEvent{},
	))

	database.DB = db
	return db
}

func adminCtx() models.AuthContext {
	return models.AuthContext{ActorID: uuid.New(), Role: models.RoleAdmin}
}

func seedStreamer(t *testing.T, name string) *models.Streamer {
	t.Helper()
	streamer := &models.Streamer{Name: name, IsActive: true}
	require.NoError(t, database.DB.Create(streamer).Error)
	return streamer
}

func seedVoiceActor(t *testing.T, name string, userID *uuid.UUID) *models.VoiceActor {
	t.Helper()
	actor := &models.VoiceActor{Name: name, UserID: userID, IsActive: true}
	require.NoError(t, database.DB.Create(actor).Error)
	return actor
}

func seedEditor(t *testing.T, name string) *models.TeamMember {
	t.Helper()
	member := &models.TeamMember{Name: name, IsEditor: true, IsActive: true}
	require.NoError(t, database.DB.Create(member).Error)
	return member
}

func seedCreator(t *testing.T, name string, userID *uuid.UUID) *models.ContentCreator {
	t.Helper()
	creator := &models.ContentCreator{Name: name, UserID: userID, IsActive: true}
	require.NoError(t, database.DB.Create(creator).Error)
	return creator
}

func seedStream(t *testing.T, streamerID uuid.UUID, title string, date time.Time, amount float64) *models.Stream {
	t.Helper()
	stream := &models.Stream{
		StreamerID:    streamerID,
		Title:         title,
		StreamDate:    date,
		Amount:        amount,
		PaymentStatus: models.StreamPaymentPending,
	}
	require.NoError(t, database.DB.Create(stream).Error)
	return stream
}

func ledgerCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.DB.Model(&models.FinancialRecord{}).Count(&count).Error)
	return count
}
