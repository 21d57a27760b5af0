package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrCorruptFile = errors.New("team data file is not valid JSON")
	ErrReadFile    = errors.New("read team data file")
	ErrWriteFile   = errors.New("write team data file")
)
