package building

import (
	"testing"
	"time"

	"conferencerent/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDate = "2026-09-01"

func newTestEngine(capacity int) *DefaultReservationEngine {
	return NewReservationEngine("BuildingA", capacity, zap.NewNop())
}

func hold(rooms int) models.HoldIntent {
	return models.HoldIntent{
		Building: "BuildingA",
		Rooms:    rooms,
		Date:     testDate,
		Hours:    2,
		Token:    uuid.NewString(),
	}
}

func ref(id string) models.ReservationRef {
	return models.ReservationRef{Building: "BuildingA", ReservationID: id}
}

func TestBookConfirmCancelLifecycle(t *testing.T) {
	e := newTestEngine(1)

	out, err := e.Book(hold(1))
	require.NoError(t, err)
	require.True(t, out.Success)
	require.NotEmpty(t, out.ReservationID)
	id := out.ReservationID

	out, err = e.Confirm(ref(id))
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "Confirmed", out.Message)

	out, err = e.Cancel(ref(id))
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "Canceled", out.Message)

	// Canceling released the capacity: the same date books again.
	out, err = e.Book(hold(1))
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.NotEqual(t, id, out.ReservationID)
}

func TestBookWrongBuildingIsError(t *testing.T) {
	e := newTestEngine(1)

	intent := hold(1)
	intent.Building = "BuildingB"
	_, err := e.Book(intent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong building")
	assert.Equal(t, 0, e.Ledger().Booked(testDate))
}

func TestBookValidation(t *testing.T) {
	e := newTestEngine(5)

	bad := hold(0)
	_, err := e.Book(bad)
	assert.Error(t, err, "zero rooms must be rejected")

	bad = hold(1)
	bad.Hours = -1
	_, err = e.Book(bad)
	assert.Error(t, err, "non-positive hours must be rejected")

	bad = hold(1)
	bad.Date = "not-a-date"
	_, err = e.Book(bad)
	assert.Error(t, err, "malformed date must be rejected")

	bad = hold(1)
	bad.Token = ""
	_, err = e.Book(bad)
	assert.Error(t, err, "missing idempotency token must be rejected")

	assert.Equal(t, 0, e.Ledger().Booked(testDate), "rejected bookings must not mutate the ledger")
}

func TestBookCapacityConflict(t *testing.T) {
	e := newTestEngine(2)

	out, err := e.Book(hold(2))
	require.NoError(t, err)
	require.True(t, out.Success)

	out, err = e.Book(hold(1))
	require.NoError(t, err, "a capacity conflict is a normal failed outcome, not an error")
	assert.False(t, out.Success)
	assert.Empty(t, out.ReservationID)
	assert.Contains(t, out.Message, "requested 1")
	assert.Contains(t, out.Message, "capacity 2")
	assert.Equal(t, 2, e.Ledger().Booked(testDate))
}

func TestBookDuplicateTokenCollapsed(t *testing.T) {
	e := newTestEngine(1)

	intent := hold(1)
	first, err := e.Book(intent)
	require.NoError(t, err)
	require.True(t, first.Success)

	// Redelivery of the same command: same token, same reservation, no
	// second capacity commitment.
	replay, err := e.Book(intent)
	require.NoError(t, err)
	assert.True(t, replay.Success)
	assert.Equal(t, first.ReservationID, replay.ReservationID)
	assert.Equal(t, 1, e.Ledger().Booked(testDate))
}

func TestConfirmUnknownIsError(t *testing.T) {
	e := newTestEngine(1)

	_, err := e.Confirm(ref("missing-id"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown reservation")
}

func TestConfirmIdempotent(t *testing.T) {
	e := newTestEngine(1)

	out, err := e.Book(hold(1))
	require.NoError(t, err)
	id := out.ReservationID

	out, err = e.Confirm(ref(id))
	require.NoError(t, err)
	require.True(t, out.Success)

	out, err = e.Confirm(ref(id))
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "Already confirmed", out.Message)

	// The second confirm changed nothing: cancel still releases exactly once.
	out, err = e.Cancel(ref(id))
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 0, e.Ledger().Booked(testDate))
}

func TestConfirmCanceledIsError(t *testing.T) {
	e := newTestEngine(1)

	out, err := e.Book(hold(1))
	require.NoError(t, err)
	id := out.ReservationID

	_, err = e.Cancel(ref(id))
	require.NoError(t, err)

	_, err = e.Confirm(ref(id))
	require.Error(t, err, "no resurrection out of CANCELED")
	assert.Contains(t, err.Error(), "already canceled")
}

func TestCancelUnknownIsSoftFailure(t *testing.T) {
	e := newTestEngine(1)

	out, err := e.Cancel(ref("missing-id"))
	require.NoError(t, err, "unknown id on cancel is not an error reply")
	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "Not found")
}

func TestCancelIdempotentReleasesOnce(t *testing.T) {
	e := newTestEngine(1)

	out, err := e.Book(hold(1))
	require.NoError(t, err)
	id := out.ReservationID
	require.Equal(t, 1, e.Ledger().Booked(testDate))

	for i := 0; i < 3; i++ {
		out, err = e.Cancel(ref(id))
		require.NoError(t, err)
		assert.True(t, out.Success)
	}
	assert.Equal(t, 0, e.Ledger().Booked(testDate), "redundant cancels must not double-release")

	// Exactly one slot is free again, not more.
	out, err = e.Book(hold(1))
	require.NoError(t, err)
	require.True(t, out.Success)
	out, err = e.Book(hold(1))
	require.NoError(t, err)
	assert.False(t, out.Success)
}

func TestCancelWrongBuildingIsError(t *testing.T) {
	e := newTestEngine(1)

	out, err := e.Book(hold(1))
	require.NoError(t, err)

	wrong := models.ReservationRef{Building: "BuildingB", ReservationID: out.ReservationID}
	_, err = e.Cancel(wrong)
	require.Error(t, err)
	assert.Equal(t, 1, e.Ledger().Booked(testDate), "misrouted cancel must not change state")
}

func TestReapExpiredReleasesAbandonedHolds(t *testing.T) {
	e := newTestEngine(1)

	out, err := e.Book(hold(1))
	require.NoError(t, err)
	require.True(t, out.Success)

	// With a zero threshold any pending hold counts as abandoned.
	reaped := e.ReapExpired(0)
	assert.Equal(t, 1, reaped)
	assert.Equal(t, 0, e.Ledger().Booked(testDate))

	// The reclaimed capacity is bookable again.
	out, err = e.Book(hold(1))
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestReapSkipsConfirmedAndYoungHolds(t *testing.T) {
	e := newTestEngine(2)

	confirmed, err := e.Book(hold(1))
	require.NoError(t, err)
	_, err = e.Confirm(ref(confirmed.ReservationID))
	require.NoError(t, err)

	pending, err := e.Book(hold(1))
	require.NoError(t, err)
	require.True(t, pending.Success)

	// Generous threshold: the fresh pending hold survives too.
	assert.Equal(t, 0, e.ReapExpired(time.Hour))
	assert.Equal(t, 2, e.Ledger().Booked(testDate))
}
