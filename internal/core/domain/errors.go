package domain

import "errors"

var (
	// ErrRetiredAccount blocks every business operation for a retired user.
	ErrRetiredAccount = errors.New("account is retired")
	// ErrInvalidPunch marks an attendance event that cannot follow the
	// previously recorded one (e.g. clocking in twice).
	ErrInvalidPunch = errors.New("invalid attendance punch")
	// ErrUnknownPunch marks a punch type outside the defined vocabulary.
	ErrUnknownPunch = errors.New("unknown punch type")
	// ErrDuplicateSubmission marks a submit identical to one accepted
	// moments earlier, usually a double tap on a slow connection.
	ErrDuplicateSubmission = errors.New("duplicate submission")
	// ErrInvalidPasscode is returned when admin elevation fails.
	ErrInvalidPasscode = errors.New("invalid passcode")
	// ErrForbidden guards admin-only operations.
	ErrForbidden = errors.New("access forbidden")
	// ErrNoImages rejects a photo batch with nothing in it.
	ErrNoImages = errors.New("no images supplied")
	// ErrUnknownPhotoCategory marks a photo type outside the defined
	// vocabulary.
	ErrUnknownPhotoCategory = errors.New("unknown photo category")
	// ErrTooManyPhotos rejects a form carrying more photos than its limit.
	ErrTooManyPhotos = errors.New("too many photos attached")
)
