// Package logger provides structured logging for seqpipe using zerolog.
//
// It supports JSON and console output, per-instance log levels, and
// component-scoped loggers with structured fields. Pipelines obtain their
// logger through [Get]("pipeline") unless one is supplied explicitly.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("pipeline")
//	log.Debug("evaluated", logger.Fields("op", "all", "visited", 10))
package logger
