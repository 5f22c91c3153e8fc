package utils

import "go.uber.org/zap"

// Logger is the application-wide sugared logger. It defaults to a no-op so
// packages can log during tests without wiring; main swaps in the real one.
var Logger = zap.NewNop().Sugar()

// InitLogger installs the production zap logger.
func InitLogger() {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	Logger = l.Sugar()
}
