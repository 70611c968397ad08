package domain

import "errors"

var (
	ErrSuperheroNotFound = errors.New("superhero not found")
	ErrImageNotFound     = errors.New("image not found")
	ErrInvalidSuperhero  = errors.New("all superhero fields are required")
	ErrUploadFailed      = errors.New("failed to upload image")
	ErrEmptyUpdate       = errors.New("superhero update names no fields")
)
