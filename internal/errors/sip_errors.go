package errors

import (
	"fmt"
	"net/http"
)

// PlatformUnsupported means the OS release is older than the minimum or could
// not be determined. Callers answer with an empty result.
func PlatformUnsupported(version string, cause error) *AppError {
	return New(ErrTypePlatformUnsupported, fmt.Sprintf("unsupported platform version: %s", version), cause, http.StatusNotImplemented).WithStack()
}

// CapabilityUnavailable means the live CSR interface is not present at runtime.
func CapabilityUnavailable(capability string, cause error) *AppError {
	return New(ErrTypeCapabilityUnavailable, fmt.Sprintf("capability unavailable: %s", capability), cause, http.StatusNotImplemented).WithStack()
}

func StoreOpenFailed(path string, cause error) *AppError {
	return New(ErrTypeStoreOpen, fmt.Sprintf("could not open property store entry: %s", path), cause, http.StatusInternalServerError).WithStack()
}

func PropertyFetchFailed(path string, cause error) *AppError {
	return New(ErrTypePropertyFetch, fmt.Sprintf("could not load properties of %s", path), cause, http.StatusInternalServerError).WithStack()
}

func PropertyTypeMismatch(key string, got string) *AppError {
	return New(ErrTypePropertyType, fmt.Sprintf("unexpected data type for %s: %s", key, got), nil, http.StatusInternalServerError).WithStack()
}

// PropertyAbsent is benign: the key is cleared or was never set.
func PropertyAbsent(key string) *AppError {
	return New(ErrTypePropertyAbsent, fmt.Sprintf("%s key not found", key), nil, http.StatusNotFound)
}

// Benign reports whether err only means "no data here" rather than a failed read.
func Benign(err error) bool {
	switch GetType(err) {
	case ErrTypePlatformUnsupported, ErrTypeCapabilityUnavailable, ErrTypePropertyAbsent:
		return true
	}
	return false
}
