package weapon

import "errors"

var (
	// ErrUnknownWeapon is returned when the catalog has no entry for a name
	ErrUnknownWeapon = errors.New("unknown weapon")

	// ErrNoCarrier is returned when installing without a carrier
	ErrNoCarrier = errors.New("weapon carrier required")
)
