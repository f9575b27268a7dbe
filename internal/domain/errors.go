package domain

import "errors"

var (
	ErrModNotFound      = errors.New("mod not found")
	ErrModNotInstalled  = errors.New("mod not installed")
	ErrAlreadyInstalled = errors.New("mod already installed")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrNoMatch          = errors.New("selector matched no elements")
	ErrMatchMismatch    = errors.New("selector match counts differ")
	ErrNotAnArchive     = errors.New("unsupported archive format")
	ErrNoDescriptor     = errors.New("archive contains no mod.json")
)
