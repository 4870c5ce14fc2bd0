package geodb

import "errors"

var (
	// ErrNotFound is returned when an address is outside of the
	// coverage of a database. Reserved, private and unassigned
	// ranges usually end up here. It is scoped to a single
	// database: an address can be known to the city database and
	// unknown to the ASN one, or the other way around.
	ErrNotFound = errors.New("address is not found in the database")
)
