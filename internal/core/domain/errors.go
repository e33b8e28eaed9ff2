package domain

import "errors"

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrRecordExists  = errors.New("record already exists")
)

// RepositoryError wraps a storage failure. Its message is the store's own
// message so callers see it unchanged; Op names the failed read or write.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return e.Err.Error()
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError returns nil when err is nil and never double-wraps.
func NewRepositoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return err
	}
	return &RepositoryError{Op: op, Err: err}
}
