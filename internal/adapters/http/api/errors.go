package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidSteamID = errors.New("steam id must be a 17-digit number")
	ErrMissingAppIDs  = errors.New("missing appids")
	ErrMissingInput   = errors.New("missing input")
)
