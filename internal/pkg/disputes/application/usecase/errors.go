package usecase

import "fmt"

// ErrPersistence indicates a repository failure inside a use case.
var ErrPersistence = fmt.Errorf("disputes use case persistence error")
