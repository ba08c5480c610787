package resolver

import "fmt"

// ProviderError reports a failed call to the translation provider.
type ProviderError struct {
	Provider string
	Word     string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("translating %q with %s: %v", e.Word, e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// StorageError reports a failed cache store operation.
type StorageError struct {
	Op   string
	Word string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Word, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
