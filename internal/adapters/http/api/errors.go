package api

import "errors"

// ErrBadRequest marks a request body the handlers could not use.
var ErrBadRequest = errors.New("bad request")
