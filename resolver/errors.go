package resolver

import "errors"

var (
	// ErrInvalidIP is returned when the query string does not parse
	// as an IPv4 or IPv6 address. No lookup is attempted for such
	// input.
	ErrInvalidIP = errors.New("given string is not a valid IP address")

	// ErrNotFound is returned when the address is unknown to both
	// databases. A single-database miss is not an error, that
	// section of the response is just omitted.
	ErrNotFound = errors.New("address is not found in any database")
)
