package memlist

var (
	ErrArenaExhausted = &ListError{"segment arena exhausted"}
	ErrInvalidSegment = &ListError{"invalid segment"}
	ErrDiscontiguous  = &ListError{"segments are not contiguous"}
	ErrBadRef         = &ListError{"invalid segment reference"}
)

type ListError struct {
	Msg string
}

func (e *ListError) Error() string {
	return e.Msg
}

func (e *ListError) Is(target error) bool {
	if targetErr, ok := target.(*ListError); ok {
		return e.Msg == targetErr.Msg
	}
	return false
}
