package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-calcreport"
	"github.com/alnah/go-calcreport/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config // used when neither --config nor CALCREPORT_CONFIG is set

	// Engine, when set, replaces the browser engine of every exporter.
	Engine calcreport.Engine
	// Sharer, when set, replaces the sharer chosen by --share.
	Sharer calcreport.Sharer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.DefaultConfig(),
	}
}

// now returns env.Now(), or the wall clock when Now is unset.
func (e *Environment) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
