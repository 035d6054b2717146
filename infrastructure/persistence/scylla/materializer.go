package scylla

import (
	"userstore/domain/user"
)

// rowScanner is the slice of *gocql.Iter the materializer needs: pull the
// next (id, name, email) row, then close and learn whether iteration failed.
// The sequence is single-pass and never restartable.
type rowScanner interface {
	Scan(dest ...interface{}) bool
	Close() error
}

// scanUser pulls at most one row from the iterator. It returns (nil, nil)
// when the iterator is empty so the caller can distinguish not-found from a
// store fault; any iteration failure is returned as-is from Close.
func scanUser(iter rowScanner) (*user.User, error) {
	var u user.User
	found := iter.Scan(&u.ID, &u.Name, &u.Email)
	if err := iter.Close(); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}

// scanUsers drains the iterator into a slice, preserving delivery order.
// A failure while pulling rows aborts the drain: the partial slice is
// discarded and the iterator's error is returned instead.
func scanUsers(iter rowScanner) ([]user.User, error) {
	users := make([]user.User, 0)
	var u user.User
	for iter.Scan(&u.ID, &u.Name, &u.Email) {
		users = append(users, u)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return users, nil
}
