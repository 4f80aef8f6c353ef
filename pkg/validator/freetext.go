package validator

import "fmt"

// Predicate is a caller-supplied check over reply text: ok reports whether
// the text is acceptable, and message explains why not.
type Predicate func(text string) (ok bool, message string)

// FreeText validates a reply against a caller-supplied Predicate. A panic
// inside Predicate is recovered and converted into a validation failure
// carrying the panic value as the message, rather than propagating into
// the caller's dispatch loop.
type FreeText struct {
	Predicate Predicate
}

func (f FreeText) Validate(text string) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{
				OK:                false,
				ErrorMessage:      fmt.Sprintf("validator predicate panicked: %v", r),
				RetryPromptSuffix: fmt.Sprintf("Your previous response was rejected: %v", r),
			}
		}
	}()

	ok, message := f.Predicate(text)
	if ok {
		return Outcome{OK: true, Value: text}
	}
	return Outcome{
		OK:                false,
		ErrorMessage:      message,
		RetryPromptSuffix: message,
	}
}
