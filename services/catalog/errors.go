package catalog

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProviderNotFound = errors.New("provider not found")
)
