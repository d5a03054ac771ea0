package core

// Logger abstracts the app logger so services can swap implementations
// (console in DEV|TEST, error-reporting-backed in QA|PROD).
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
