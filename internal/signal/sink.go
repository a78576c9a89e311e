// Package signal delivers classification results to the process being
// driven: a text file, a UDP datagram, or simulated key presses.
package signal

import "errors"

// Sink receives one text payload per emission. Delivery is fire and forget.
type Sink interface {
	Emit(payload string) error
	Close() error
}

// Multi fans one payload out to several sinks. Every sink is tried; the
// returned error joins the individual failures.
type Multi []Sink

// Emit sends payload to every sink.
func (m Multi) Emit(payload string) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
