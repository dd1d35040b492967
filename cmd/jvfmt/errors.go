package main

import (
	"errors"
	"fmt"
)

// Input validation errors.
var (
	errFileNotFound = errors.New("file not found")
	errFileEmpty    = errors.New("file is empty")
	errFileTooLarge = errors.New("file is too large")
	errNotRegular   = errors.New("not a regular file")
)

// stage identifies the step of processing at which an input failed.
type stage string

const (
	stageInput  stage = "input"
	stageParse  stage = "parse"
	stageSelect stage = "select"
	stagePrint  stage = "print"
)

// fileError reports the failure of one input at a particular stage.
type fileError struct {
	Stage stage
	Path  string
	Err   error
}

func (e *fileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *fileError) Unwrap() error { return e.Err }

// Is reports whether target is a *fileError for the same stage, so that
// callers can test for a class of failure with errors.Is.
func (e *fileError) Is(target error) bool {
	t, ok := target.(*fileError)
	return ok && t.Stage == e.Stage
}

func inputError(path string, err error) error {
	return &fileError{Stage: stageInput, Path: path, Err: err}
}

func parseError(path string, err error) error {
	return &fileError{Stage: stageParse, Path: path, Err: err}
}

func selectError(path string, err error) error {
	return &fileError{Stage: stageSelect, Path: path, Err: err}
}

func printError(path string, err error) error {
	return &fileError{Stage: stagePrint, Path: path, Err: err}
}
