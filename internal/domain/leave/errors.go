package leave

import "errors"

var (
	ErrLeaveNotFound           = errors.New("leave application not found")
	ErrOverlappingLeave        = errors.New("leave application overlaps with an existing leave")
	ErrLeaveAlreadyDecided     = errors.New("leave application has already been processed")
	ErrNotLeaveOwner           = errors.New("only the applicant may cancel this leave")
	ErrRejectionReasonRequired = errors.New("rejection requires a reason")
)
