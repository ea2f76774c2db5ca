package location

import "errors"

var ErrNoFix = errors.New("no geolocation fix")
