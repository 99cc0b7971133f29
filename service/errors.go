package service

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrMediaUpload        = errors.New("media upload failed")
)
