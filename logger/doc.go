// Package logger provides structured logging for transduce using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. The process drivers log
// their run lifecycle (start, early termination, completion) at debug level
// tagged with the driver name and a per-run identifier.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("process")
//	log.Debug("run completed", logger.Fields("driver", "eager", "items", 42))
package logger
