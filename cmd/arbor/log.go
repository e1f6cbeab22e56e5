package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func newLogger(verbose bool) *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Level = logrus.InfoLevel
	if verbose {
		l.Level = logrus.DebugLevel
	}
	return l
}
