package database

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsvp-planner/app/internal/models"
)

// setupTestDB initializes an in-memory SQLite database with the schema loaded.
func setupTestDB(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	db, err := InitDB(DriverSQLite, ":memory:")
	require.NoError(t, err, "Failed to initialize test database")

	teardown := func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	}
	return db, teardown
}

func createTestUser(t *testing.T, db *sqlx.DB, email, password string) *models.User {
	t.Helper()
	user, err := CreateUser(context.Background(), db, email, password)
	require.NoError(t, err, "Failed to create test user %s", email)
	return user
}

func createTestEvent(t *testing.T, db *sqlx.DB, owner *models.User, slug string) *models.Event {
	t.Helper()
	start := time.Date(2026, time.June, 12, 15, 0, 0, 0, time.UTC)
	event, err := CreateEvent(context.Background(), db, &models.Event{
		UserID:    owner.ID,
		Title:     "Event " + slug,
		Type:      models.EventTypeWedding,
		StartDate: start,
		EndDate:   start.Add(48 * time.Hour),
		Slug:      slug,
	})
	require.NoError(t, err, "Failed to create test event %s", slug)
	return event
}

func createTestSession(t *testing.T, db *sqlx.DB, event *models.Event, name string, startsAt time.Time) *models.Session {
	t.Helper()
	session, err := CreateSession(context.Background(), db, &models.Session{
		EventID:  event.ID,
		Name:     name,
		StartsAt: startsAt,
	})
	require.NoError(t, err, "Failed to create test session %s", name)
	return session
}

func createTestHousehold(t *testing.T, db *sqlx.DB, event *models.Event, name string) *models.Household {
	t.Helper()
	household, err := CreateHousehold(context.Background(), db, &models.Household{EventID: event.ID, Name: name})
	require.NoError(t, err, "Failed to create test household %s", name)
	return household
}

func createTestGuest(t *testing.T, db *sqlx.DB, household *models.Household, first, last string, primary bool) *models.Guest {
	t.Helper()
	guest, err := CreateGuest(context.Background(), db, &models.Guest{
		EventID:          household.EventID,
		HouseholdID:      household.ID,
		FirstName:        first,
		LastName:         last,
		IsPrimaryContact: primary,
	})
	require.NoError(t, err, "Failed to create test guest %s %s", first, last)
	return guest
}

func createTestQuestion(t *testing.T, db *sqlx.DB, event *models.Event, q models.Question) *models.Question {
	t.Helper()
	q.EventID = event.ID
	question, err := CreateQuestion(context.Background(), db, &q)
	require.NoError(t, err, "Failed to create test question %s", q.Label)
	return question
}

func TestInitDB(t *testing.T) {
	t.Run("Unsupported driver", func(t *testing.T) {
		_, err := InitDB("mysql", "whatever")
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("Schema can be applied twice", func(t *testing.T) {
		db, teardown := setupTestDB(t)
		defer teardown()

		assert.NoError(t, Migrate(context.Background(), db))
	})
}
