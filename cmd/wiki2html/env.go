package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-wiki2html/internal/assets"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, and asset loading.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Getenv      func(string) string
	Environ     func() []string
	AssetLoader assets.AssetLoader // nil = resolved from config
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
	}
}

// getenv returns the value of key, tolerating a nil Getenv in tests.
func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

// environ returns KEY=value pairs, tolerating a nil Environ in tests.
func (e *Environment) environ() []string {
	if e.Environ == nil {
		return nil
	}
	return e.Environ()
}

// now returns the current time, tolerating a nil Now in tests.
func (e *Environment) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
