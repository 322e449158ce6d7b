package supply

import "github.com/cockroachdb/errors"

var (
	// ErrMaxSupplyExceeded is returned if an increase would push the Counter above its ceiling.
	ErrMaxSupplyExceeded = errors.New("maximum supply exceeded")
	// ErrSupplyUnderflow is returned if a decrease would push the Counter below zero.
	ErrSupplyUnderflow = errors.New("supply underflow")
)
