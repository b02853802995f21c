package kintai

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexflint/go-filemutex"
	"github.com/oklog/ulid/v2"
)

// FindOpenSession returns the record with no clock-out. The store is
// external and may already hold more than one open record from prior bugs;
// in that case the latest clock-in wins deterministically. Callers that
// care about the anomaly count the open records themselves.
func FindOpenSession(records []Record) (Record, bool) {
	var open Record
	var found bool
	for _, r := range records {
		if !r.Open() {
			continue
		}
		if !found || r.ClockIn.After(open.ClockIn) {
			open = r
			found = true
		}
	}
	return open, found
}

func CanClockIn(records []Record) bool {
	_, found := FindOpenSession(records)
	return !found
}

// Tracker applies clock-in/out transitions to the record store. The file
// mutex serializes mutations across processes, the in-process mutex across
// goroutines, so check-then-append is one logical step either way.
type Tracker struct {
	repo        Repository
	fmux        *filemutex.FileMutex
	mu          sync.Mutex
	notificator Notificator
	logger      *slog.Logger
	clock       func() time.Time
}

func NewTracker(repo Repository, fmux *filemutex.FileMutex, notificator Notificator, logger *slog.Logger) *Tracker {
	return &Tracker{
		repo:        repo,
		fmux:        fmux,
		notificator: notificator,
		logger:      logger,
		clock:       time.Now,
	}
}

// ClockIn opens a new session, rejecting with ErrAlreadyOpen while another
// session is open. The notification goes out only after the record is
// committed and never affects the result.
func (tr *Tracker) ClockIn() (Record, error) {
	r, err := tr.clockIn()
	if err != nil {
		return Record{}, err
	}
	tr.notify(Event{Action: ActionClockIn, At: r.ClockIn})
	return r, nil
}

func (tr *Tracker) clockIn() (Record, error) {
	unlock, err := tr.lock()
	if err != nil {
		return Record{}, err
	}
	defer unlock()

	records, err := tr.repo.ListRecords()
	if err != nil {
		return Record{}, err
	}
	if open, found := tr.resolveOpen(records); found {
		return Record{}, fmt.Errorf("%w: since %s", ErrAlreadyOpen, ToLocal(open.ClockIn).Format("15:04"))
	}

	now := ToLocal(tr.clock())
	r := Record{
		ID:      ulid.Make().String(),
		ClockIn: now,
		Date:    LocalDateKey(now),
	}
	if err := tr.repo.SaveRecord(r); err != nil {
		return Record{}, err
	}
	tr.logger.Debug("clock in", slog.String("id", r.ID), slog.String("date", string(r.Date)))
	return r, nil
}

// ClockOut closes the record with the given id. The id is not required to
// belong to today: a session opened yesterday and still running is closable.
func (tr *Tracker) ClockOut(id string) (Record, error) {
	r, err := tr.clockOut(id)
	if err != nil {
		return Record{}, err
	}
	tr.notify(Event{Action: ActionClockOut, At: *r.ClockOut, DurationMinutes: r.Minutes()})
	return r, nil
}

func (tr *Tracker) clockOut(id string) (Record, error) {
	unlock, err := tr.lock()
	if err != nil {
		return Record{}, err
	}
	defer unlock()

	records, err := tr.repo.ListRecords()
	if err != nil {
		return Record{}, err
	}
	var target *Record
	for i := range records {
		if records[i].ID == id {
			target = &records[i]
			break
		}
	}
	if target == nil {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !target.Open() {
		return Record{}, fmt.Errorf("%w: %s", ErrAlreadyClosed, id)
	}

	now := ToLocal(tr.clock())
	target.ClockOut = &now
	if err := tr.repo.SaveRecord(*target); err != nil {
		return Record{}, err
	}
	tr.logger.Debug("clock out",
		slog.String("id", target.ID),
		slog.Int("minutes", *target.Minutes()))
	return *target, nil
}

// Status reports the currently-open session, derived from the record set on
// every call rather than tracked as separate state.
func (tr *Tracker) Status() (Record, bool, error) {
	records, err := tr.repo.ListRecords()
	if err != nil {
		return Record{}, false, err
	}
	r, found := tr.resolveOpen(records)
	return r, found, nil
}

func (tr *Tracker) resolveOpen(records []Record) (Record, bool) {
	opens := 0
	for _, r := range records {
		if r.Open() {
			opens++
		}
	}
	if opens > 1 {
		tr.logger.Warn("data inconsistency: multiple open sessions, using latest clock-in",
			slog.Int("count", opens))
	}
	return FindOpenSession(records)
}

func (tr *Tracker) notify(ev Event) {
	if err := tr.notificator.Notify(ev); err != nil {
		tr.logger.Error("notification failed",
			slog.String("action", ev.Action),
			slog.String("error", err.Error()))
	}
}

func (tr *Tracker) lock() (func(), error) {
	tr.mu.Lock()
	if err := tr.fmux.Lock(); err != nil {
		tr.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return func() {
		if err := tr.fmux.Unlock(); err != nil {
			tr.logger.Error("unlock failed", slog.String("error", err.Error()))
		}
		tr.mu.Unlock()
	}, nil
}
