package errors

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorType string

func (s ErrorType) String() string {
	return strings.ToLower(string(s))
}

const (
	ErrConfigValidation  ErrorType = "Config Validation Error"
	ErrChannelResolution ErrorType = "Channel Resolution Error"
	ErrMetadataFetch     ErrorType = "Metadata Fetch Error"
	ErrUnknownContent    ErrorType = "Unknown Content Type Error"
	ErrArtifactDownload  ErrorType = "Artifact Download Error"
)

// DomainError carries the failure kind and the entity (channel, url, option name)
// the failure is about.
type DomainError struct {
	ErrorType  ErrorType
	Entity     string
	Message    string
	WrappedErr error
}

func NewError(errType ErrorType, entity, msg string) *DomainError {
	return &DomainError{
		ErrorType: errType,
		Entity:    entity,
		Message:   msg,
	}
}

func ConfigValidation(entity, msg string) *DomainError {
	return NewError(ErrConfigValidation, entity, msg)
}

func ChannelResolution(channel, msg string) *DomainError {
	return NewError(ErrChannelResolution, channel, msg)
}

func MetadataFetch(url, msg string, err error) *DomainError {
	return &DomainError{
		ErrorType:  ErrMetadataFetch,
		Entity:     url,
		Message:    msg,
		WrappedErr: err,
	}
}

func UnknownContentType(url, contentType string) *DomainError {
	return NewError(ErrUnknownContent, url, fmt.Sprintf("unexpected content type [%s]", contentType))
}

func ArtifactDownload(url, msg string, err error) *DomainError {
	return &DomainError{
		ErrorType:  ErrArtifactDownload,
		Entity:     url,
		Message:    msg,
		WrappedErr: err,
	}
}

func (e *DomainError) Error() string {
	if e.WrappedErr == nil {
		return fmt.Sprintf("%v for entity %v: %v", e.ErrorType.String(), e.Entity, e.Message)
	}
	return fmt.Sprintf("%v for entity %v: %v: %v", e.ErrorType.String(), e.Entity, e.Message, e.WrappedErr)
}

func (e *DomainError) Unwrap() error {
	return e.WrappedErr
}

// IsType reports whether any error in err's chain is a DomainError of the given type.
func IsType(err error, errType ErrorType) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.ErrorType == errType
	}
	return false
}

// TypeOf returns the type of the first DomainError in err's chain, or an empty ErrorType.
func TypeOf(err error) ErrorType {
	var de *DomainError
	if errors.As(err, &de) {
		return de.ErrorType
	}
	return ""
}
