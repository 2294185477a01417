package progress

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/academia/core"
)

var (
	// errors
	ErrNotFound = errors.New("progress not found")
)

type (
	// Store is the remote progress record of (user, course) pairs.
	Store interface {
		GetProgress(ctx context.Context, userID, courseID string) (Progress, error)
		UpdateProgress(ctx context.Context, userID, courseID string, p Progress) error
	}

	// TransientSyncError is returned when progress could not be pushed.
	// The local state must be rolled back and the user may retry.
	TransientSyncError struct {
		UserID   string
		CourseID string
		Err      error
	}

	Synchronizer struct {
		store Store
		log   core.Logger
	}
)

func (e *TransientSyncError) Error() string {
	return fmt.Sprintf("could not save progress of course %s: %v", e.CourseID, e.Err)
}

func (e *TransientSyncError) Cause() error  { return e.Err }
func (e *TransientSyncError) Unwrap() error { return e.Err }

// IsTransientSyncError reports whether err (or its cause) is a *TransientSyncError.
func IsTransientSyncError(err error) bool {
	var tse *TransientSyncError
	return errors.As(err, &tse)
}

func NewSynchronizer(store Store, logger core.Logger) *Synchronizer {
	return &Synchronizer{store: store, log: logger}
}

// Fetch returns the persisted progress, or zero progress when none exists.
// Only unexpected failures are returned.
func (s *Synchronizer) Fetch(ctx context.Context, userID, courseID string) (Progress, error) {
	p, err := s.store.GetProgress(ctx, userID, courseID)
	if err != nil {
		if pkgerrors.Cause(err) == ErrNotFound {
			return Progress{CompletedModules: []int{}}, nil
		}
		return Progress{}, pkgerrors.Wrap(err, "fetching progress")
	}
	p.Normalize()
	return p, nil
}

// Push writes completed and current to the store. Every failure is reported as a *TransientSyncError.
func (s *Synchronizer) Push(ctx context.Context, userID, courseID string, completed []int, current int) error {
	p := Progress{CompletedModules: append([]int(nil), completed...), CurrentModule: current}
	p.Normalize()
	if err := s.store.UpdateProgress(ctx, userID, courseID, p); err != nil {
		if s.log != nil {
			s.log.Warn("progress push failed", err, map[string]interface{}{"userID": userID, "courseID": courseID})
		}
		return &TransientSyncError{UserID: userID, CourseID: courseID, Err: err}
	}
	return nil
}
