package jwtx

import "errors"

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and issuer
	// mismatches. Deliberately coarse: callers treat all of these as 401.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrExpired reports a token past its exp claim (or before nbf).
	ErrExpired = errors.New("jwtx: token expired")

	// ErrWeakSecret reports a signing secret too short to be safe.
	ErrWeakSecret = errors.New("jwtx: signing secret must be at least 32 bytes")
)
