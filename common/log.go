package common

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log categories used across the module.
const (
	CategoryAI          = "ai"
	CategoryAISpline    = "ai_spline"
	CategoryCollectible = "collectible"
	CategoryTimeStamp   = "timestamp"
	CategoryPrefabs     = "prefabs"
)

var base = newBaseLogger()

func newBaseLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Logger returns an entry tagged with the given category.
func Logger(category string) *logrus.Entry {
	return base.WithField("category", category)
}

// SetLevel parses and applies a logrus level name such as "debug" or "warn".
func SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	base.SetLevel(lvl)
	return nil
}

// Base exposes the shared logger so tools and tests can redirect output.
func Base() *logrus.Logger {
	return base
}
