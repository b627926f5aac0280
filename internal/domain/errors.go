package domain

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrProfileNotFound = errors.New("profile not found")
	ErrNotProfileOwner = errors.New("profile belongs to another account")

	ErrRelationNotFound = errors.New("relation not found")
	ErrRelationExists   = errors.New("profiles are already connected")
	ErrSelfRelation     = errors.New("profile cannot connect to itself")

	ErrPostNotFound = errors.New("post not found")
)
