package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Organizer errors
	ErrDirectoryNotFound     = fmt.Errorf("directory not found")
	ErrDirectoryCreateFailed = fmt.Errorf("failed to create category directory")
	ErrMoveFailed            = fmt.Errorf("move failed")
	ErrDestinationExists     = fmt.Errorf("destination already exists")
	ErrOrganizeInProgress    = fmt.Errorf("an organize run is already in progress")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
