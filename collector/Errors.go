package collector

import "errors"

// CollectorError implements errors unique to a rollout collector
type CollectorError struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *CollectorError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

var errEmptyBuffer error = errors.New("buffer empty")

// IsEmptyBuffer returns whether or not an error reports that a
// rollout collector is empty
func IsEmptyBuffer(err error) bool {
	if collErr, ok := err.(*CollectorError); ok {
		err = collErr.Err
	}
	return err == errEmptyBuffer
}
