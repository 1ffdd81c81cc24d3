// Package logging configures the structured logger shared by the sequencer
// and verifier daemons.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logrus logger configured from a human-readable level name,
// writing JSON lines to stdout so log output composes with the process
// supervisors these daemons run under.
func New(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.JSONFormatter{})
	return log, nil
}
