package tracking

import "errors"

var (
	ErrLeadIDRequired       = errors.New("lead ID is required")
	ErrEmptyNote            = errors.New("note must not be empty")
	ErrEmptyDescription     = errors.New("description must not be empty")
	ErrInvalidContactMethod = errors.New("invalid contact method")
	ErrInvalidActivityType  = errors.New("invalid activity type")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrGenerateID           = errors.New("error generating activity ID")
	ErrAppendActivity       = errors.New("error appending activity")
	ErrFetchActivities      = errors.New("error fetching activities")
)
