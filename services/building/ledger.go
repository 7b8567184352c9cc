package building

import "sync"

// CapacityLedger tracks rooms committed per date for one building. The
// declared capacity applies uniformly to every date.
//
// Reserve is the single fused read-guard-commit step of the booking path:
// under the ledger lock it reads the committed count for the date, rejects
// if the request would exceed capacity, and otherwise commits the
// increment. No caller can observe a half-applied state.
type CapacityLedger struct {
	mu             sync.Mutex
	capacityPerDay int
	booked         map[string]int
}

// NewCapacityLedger creates a ledger with the given per-day room capacity.
func NewCapacityLedger(capacityPerDay int) *CapacityLedger {
	return &CapacityLedger{
		capacityPerDay: capacityPerDay,
		booked:         make(map[string]int),
	}
}

// Capacity returns the declared rooms-per-day capacity.
func (l *CapacityLedger) Capacity() int {
	return l.capacityPerDay
}

// Booked returns the rooms currently committed on the given date.
func (l *CapacityLedger) Booked(date string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.booked[date]
}

// Reserve atomically commits rooms against the date if capacity allows.
// It returns the count committed before this call and whether the
// reservation was accepted. On rejection the ledger is untouched.
func (l *CapacityLedger) Reserve(date string, rooms int) (prevBooked int, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.booked[date]
	if current+rooms > l.capacityPerDay {
		return current, false
	}
	l.booked[date] = current + rooms
	return current, true
}

// Release returns rooms to the date's pool. The committed count is floored
// at zero to guard against accounting drift.
func (l *CapacityLedger) Release(date string, rooms int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.booked[date] - rooms
	if remaining <= 0 {
		delete(l.booked, date)
		return
	}
	l.booked[date] = remaining
}
