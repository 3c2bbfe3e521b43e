package handlers_test

import (
	"net/http"
	"testing"
	"time"

	apierrors "github.com/rallypoint/rallypoint-api/internal/errors"
	"github.com/rallypoint/rallypoint-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCapacityEnforcement(t *testing.T) {
	env := setupTestEnv(t)
	event := env.createEvent(t, "Beach Cleanup", 1)
	_, tokenA := env.createVolunteer(t, "a@example.com")
	volB, tokenB := env.createVolunteer(t, "b@example.com")

	w := env.request(t, http.MethodPost, "/api/events/"+event.ID+"/register", nil, tokenA)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The single slot is taken; the second join must fail with the
	// capacity-specific code, not a generic conflict.
	w = env.request(t, http.MethodPost, "/api/events/"+event.ID+"/register", nil, tokenB)
	requireErrorCode(t, w, http.StatusConflict, apierrors.ErrCodeEventFull)

	w = env.request(t, http.MethodPost, "/api/events/"+event.ID+"/waitlist", nil, tokenB)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.request(t, http.MethodPost, "/api/events/"+event.ID+"/waitlist", nil, tokenB)
	requireErrorCode(t, w, http.StatusConflict, apierrors.ErrCodeConflict)

	// Vacating the slot does not promote anyone from the waitlist.
	w = env.request(t, http.MethodDelete, "/api/events/"+event.ID+"/unregister", nil, tokenA)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var registrations int64
	require.NoError(t, env.db.Model(&models.Registration{}).
		Where("event_id = ?", event.ID).Count(&registrations).Error)
	require.Zero(t, registrations)

	var waitlisted int64
	require.NoError(t, env.db.Model(&models.WaitlistEntry{}).
		Where("event_id = ? AND volunteer_id = ?", event.ID, volB.ID).Count(&waitlisted).Error)
	require.EqualValues(t, 1, waitlisted)

	// B can now claim the freed slot explicitly, which also clears B's
	// waitlist entry.
	w = env.request(t, http.MethodPost, "/api/events/"+event.ID+"/register", nil, tokenB)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, env.db.Model(&models.WaitlistEntry{}).
		Where("event_id = ? AND volunteer_id = ?", event.ID, volB.ID).Count(&waitlisted).Error)
	require.Zero(t, waitlisted)
}

func TestJoinTwice(t *testing.T) {
	env := setupTestEnv(t)
	event := env.createEvent(t, "Food Drive", 5)
	_, sessionToken := env.createVolunteer(t, "a@example.com")

	w := env.request(t, http.MethodPost, "/api/events/"+event.ID+"/register", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/events/"+event.ID+"/register", nil, sessionToken)
	requireErrorCode(t, w, http.StatusConflict, apierrors.ErrCodeConflict)
}

func TestUnregisterWithoutRegistration(t *testing.T) {
	env := setupTestEnv(t)
	event := env.createEvent(t, "Food Drive", 5)
	_, sessionToken := env.createVolunteer(t, "a@example.com")

	w := env.request(t, http.MethodDelete, "/api/events/"+event.ID+"/unregister", nil, sessionToken)
	requireErrorCode(t, w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func TestJoinUnknownEvent(t *testing.T) {
	env := setupTestEnv(t)
	_, sessionToken := env.createVolunteer(t, "a@example.com")

	w := env.request(t, http.MethodPost, "/api/events/no-such-event/register", nil, sessionToken)
	requireErrorCode(t, w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func TestJoinRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)
	event := env.createEvent(t, "Food Drive", 5)

	w := env.request(t, http.MethodPost, "/api/events/"+event.ID+"/register", nil, "")
	requireErrorCode(t, w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)
}

func TestMyEventsRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	event := env.createEvent(t, "Park Restoration", 10)
	_, sessionToken := env.createVolunteer(t, "a@example.com")

	w := env.request(t, http.MethodGet, "/api/users/my-events", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decodeBody(t, w)["events"])

	w = env.request(t, http.MethodPost, "/api/events/"+event.ID+"/register", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/users/my-events", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)
	events, ok := decodeBody(t, w)["events"].([]any)
	require.True(t, ok)
	require.Len(t, events, 1)

	w = env.request(t, http.MethodDelete, "/api/events/"+event.ID+"/unregister", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/users/my-events", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decodeBody(t, w)["events"])
}

func TestMyWaitlist(t *testing.T) {
	env := setupTestEnv(t)
	event := env.createEvent(t, "Night Shelter", 2)
	_, sessionToken := env.createVolunteer(t, "a@example.com")

	w := env.request(t, http.MethodPost, "/api/events/"+event.ID+"/waitlist", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.request(t, http.MethodGet, "/api/users/my-waitlist", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)
	events, ok := decodeBody(t, w)["events"].([]any)
	require.True(t, ok)
	require.Len(t, events, 1)
}

func TestEventCRUD(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := env.createAdmin(t)

	w := env.request(t, http.MethodPost, "/api/events", map[string]any{
		"title":           "River Sweep",
		"description":     "Pick up litter along the river bank",
		"date":            time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"location":        "East Bank",
		"tags":            []string{"outdoors", "cleanup"},
		"slots_available": 12,
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	eventID, _ := created["id"].(string)
	require.NotEmpty(t, eventID)

	w = env.request(t, http.MethodGet, "/api/events/"+eventID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decodeBody(t, w)
	require.Equal(t, "River Sweep", fetched["title"])
	require.EqualValues(t, 12, fetched["slots_available"])
	require.EqualValues(t, 0, fetched["registration_count"])
	require.EqualValues(t, 12, fetched["remaining"])
	require.Equal(t, false, fetched["full"])

	w = env.request(t, http.MethodPut, "/api/events/"+eventID, map[string]any{
		"slots_available": 3,
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.request(t, http.MethodGet, "/api/events/"+eventID, nil, "")
	require.EqualValues(t, 3, decodeBody(t, w)["slots_available"])

	w = env.request(t, http.MethodDelete, "/api/events/"+eventID, nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/events/"+eventID, nil, "")
	requireErrorCode(t, w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func TestEventCreateRequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	_, sessionToken := env.createVolunteer(t, "a@example.com")

	w := env.request(t, http.MethodPost, "/api/events", map[string]any{
		"title":           "Rogue Event",
		"date":            time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"slots_available": 5,
	}, sessionToken)
	requireErrorCode(t, w, http.StatusForbidden, apierrors.ErrCodeForbidden)
}

func TestEventListPaginationAndTagFilter(t *testing.T) {
	env := setupTestEnv(t)
	for i := 0; i < 3; i++ {
		env.createEvent(t, "Untagged", 5)
	}
	tagged := &models.Event{
		Title:          "Tagged",
		Date:           time.Now().Add(time.Hour),
		Tags:           []string{"cleanup"},
		SlotsAvailable: 5,
	}
	require.NoError(t, env.db.Create(tagged).Error)

	w := env.request(t, http.MethodGet, "/api/events?page=1&limit=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.EqualValues(t, 4, body["total_count"])
	require.Len(t, body["events"].([]any), 2)

	w = env.request(t, http.MethodGet, "/api/events?tag=cleanup", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	require.EqualValues(t, 1, body["total_count"])
}

func TestEventFullFlagInListing(t *testing.T) {
	env := setupTestEnv(t)
	event := env.createEvent(t, "Tiny Event", 1)
	_, sessionToken := env.createVolunteer(t, "a@example.com")

	w := env.request(t, http.MethodPost, "/api/events/"+event.ID+"/register", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/events/"+event.ID, nil, "")
	body := decodeBody(t, w)
	require.Equal(t, true, body["full"])
	require.EqualValues(t, 0, body["remaining"])
	require.EqualValues(t, 1, body["registration_count"])
}

func TestDeleteEventClearsRegistrations(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := env.createAdmin(t)
	event := env.createEvent(t, "Doomed Event", 5)
	_, sessionToken := env.createVolunteer(t, "a@example.com")

	w := env.request(t, http.MethodPost, "/api/events/"+event.ID+"/register", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodDelete, "/api/events/"+event.ID, nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, env.db.Model(&models.Registration{}).
		Where("event_id = ?", event.ID).Count(&count).Error)
	require.Zero(t, count)
}
