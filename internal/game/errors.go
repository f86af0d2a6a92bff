package game

import "errors"

var ErrValidation = errors.New("validation failed")
var ErrConflict = errors.New("conflict")
var ErrNotFound = errors.New("not found")
