package ocr

import (
	"fmt"
	"log/slog"
	"sync"
)

// LoadFunc loads the primary recognizer.
type LoadFunc func() (PrimaryRecognizer, error)

// Engines owns the recognizers shared by every page worker.
//
// The primary recognizer is loaded at most once. Concurrent callers of
// Primary wait for the first load to finish. A failed load disables the
// primary recognizer for the life of the Engines value.
type Engines struct {
	load      LoadFunc
	secondary SecondaryRecognizer
	logger    *slog.Logger

	once    sync.Once
	primary PrimaryRecognizer
	err     error
}

// NewEngines creates an Engines value. load may be nil when no primary
// recognizer is available; secondary may be nil when no word recognizer is
// available.
func NewEngines(load LoadFunc, secondary SecondaryRecognizer, logger *slog.Logger) *Engines {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engines{
		load:      load,
		secondary: secondary,
		logger:    logger,
	}
}

// Warm loads the primary recognizer now instead of on first use.
func (e *Engines) Warm() error {
	_, err := e.Primary()
	return err
}

// Primary returns the primary recognizer, loading it on first call.
func (e *Engines) Primary() (PrimaryRecognizer, error) {
	e.once.Do(func() {
		if e.load == nil {
			e.err = ErrEngineUnavailable
			return
		}

		p, err := e.load()
		if err == nil && p == nil {
			err = fmt.Errorf("loader returned no recognizer")
		}
		if err != nil {
			e.err = fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
			e.logger.Warn("primary OCR engine disabled", "error", err)
			return
		}

		e.primary = p
		e.logger.Debug("primary OCR engine loaded")
	})
	return e.primary, e.err
}

// Secondary returns the secondary recognizer.
func (e *Engines) Secondary() (SecondaryRecognizer, error) {
	if e.secondary == nil {
		return nil, ErrEngineUnavailable
	}
	return e.secondary, nil
}
