//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Infinite-Tech-Repair/service-repair/internal/application"
	bookingDomain "github.com/Infinite-Tech-Repair/service-repair/internal/domain/booking"
	"github.com/Infinite-Tech-Repair/service-repair/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// countingNotifier records notification traffic without sending anything.
type countingNotifier struct {
	created       int
	statusChanged int
}

func (n *countingNotifier) NotifyCreated(bookingDomain.Summary) { n.created++ }

func (n *countingNotifier) NotifyStatusChanged(bookingDomain.Summary, bookingDomain.Status) {
	n.statusChanged++
}

// setupPostgres starts a PostgreSQL testcontainer and returns a connected,
// migrated GORM DB.
func setupPostgres(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := pgmodule.Run(ctx, "postgres:16-alpine",
		pgmodule.WithDatabase("test_repair"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(&repository.BookingModel{}, &repository.ArchivedBookingModel{}))

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{DB: db, Cleanup: cleanup}
}

// setupService wires the full booking service against the given DB, with
// event publishing and caching disabled.
func setupService(t *testing.T, db *gorm.DB) (*application.BookingService, *countingNotifier) {
	t.Helper()

	notifier := &countingNotifier{}
	svc := application.NewBookingService(
		repository.NewGormBookingRepository(db),
		repository.NewGormArchiver(db),
		repository.NewGormSearchEngine(db),
		notifier,
		nil,
		nil,
		zaptest.NewLogger(t),
	)
	return svc, notifier
}

// seedBooking inserts an active booking with a fixed tracking id so search
// assertions have deterministic targets.
func seedBooking(t *testing.T, db *gorm.DB, trackingID, name, email string, createdAt time.Time) uint64 {
	t.Helper()

	images, _ := json.Marshal([]string{})
	model := repository.BookingModel{
		TrackingID:   trackingID,
		CustomerName: name,
		Email:        email,
		DeviceType:   "Test Device",
		ServiceType:  "Drop-off",
		Images:       images,
		Status:       "Booked",
		CreatedAt:    createdAt,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed booking")
	return model.ID
}
