package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidDisplayWidth is returned when the display width cap is not positive.
	ErrInvalidDisplayWidth = errors.New("invalid max display width: must be positive")

	// ErrInvalidMinROISide is returned when the minimum selection size is negative.
	ErrInvalidMinROISide = errors.New("invalid minimum ROI side: must be non-negative")

	// ErrInvalidPageSegMode is returned for a page segmentation mode outside 0-13.
	ErrInvalidPageSegMode = errors.New("invalid page segmentation mode: must be between 0 and 13")

	// ErrInvalidTimeout is returned when the recognition timeout is negative.
	ErrInvalidTimeout = errors.New("invalid recognition timeout: must be non-negative")

	// ErrEmptyLanguage is returned when no recognition language is set.
	ErrEmptyLanguage = errors.New("invalid language: must not be empty")

	// ErrInvalidLogFormat is returned for a log format other than console or json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be console or json")

	// ErrConfigNotFound is returned when an explicitly named config file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
