package utils

// Error is a const-friendly string error type.
type Error string

func (e Error) Error() string {
	return string(e)
}
