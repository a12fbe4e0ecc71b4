package coordinator

import (
	"errors"
	"log/slog"
	"time"

	"visitcoord/internal/database"
	"visitcoord/internal/model"
)

// Lifecycle owns Session.Status. Everything else goes through Advance
// or SetStatus; nothing in the repo writes the column directly.
type Lifecycle struct {
	dbm    *database.DatabaseManager
	logger *slog.Logger
}

func NewLifecycle(dbm *database.DatabaseManager) *Lifecycle {
	return &Lifecycle{
		dbm:    dbm,
		logger: slog.With("logger", "lifecycle"),
	}
}

// SetStatus writes the status unconditionally. The caller asserts the
// transition is legitimate; a missing session is reported, not retried.
func (l *Lifecycle) SetStatus(sessionID uint, status model.Status) error {
	if !status.Valid() {
		return ErrValidationFailed
	}

	err := l.dbm.SessionQuery().Id(sessionID).Update(map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	})

	if errors.Is(err, database.ErrNoRows) {
		return ErrNotFound
	}

	if err != nil {
		return storeErr(err)
	}

	return nil
}

// Advance moves the session forward to the given status. Re-applying
// the current status, or a status the session has already passed, is a
// no-op. The write is conditional on the status it read, so a racing
// caller can never overwrite a later status with an earlier one; on a
// lost race it re-reads and re-checks.
func (l *Lifecycle) Advance(sessionID uint, to model.Status) error {
	if !to.Valid() {
		return ErrValidationFailed
	}

	for {
		s := l.dbm.SessionQuery().Id(sessionID).One()
		if s == nil {
			return ErrNotFound
		}

		if s.Status.Rank() >= to.Rank() {
			return nil
		}

		err := l.dbm.SessionQuery().Id(sessionID).Status(s.Status).Update(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})

		if errors.Is(err, database.ErrNoRows) {
			// a concurrent caller moved the status, re-check
			continue
		}

		if err != nil {
			return storeErr(err)
		}

		l.logger.Info("session status change",
			slog.Any("session", sessionID),
			slog.String("from", string(s.Status)),
			slog.String("to", string(to)))

		return nil
	}
}
