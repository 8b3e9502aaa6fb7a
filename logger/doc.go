// Package logger provides structured logging on zerolog.
//
// The stream engine itself never logs. Logging enters a pipeline through the
// observability.Logged operator, which writes traversal start, end and error
// events through a Logger from this package.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	logger.Init(cfg.Logging)
//	log := logger.Get("ingest")
//	log.Info("traversal finished", logger.Fields(logger.FieldPulls, 12))
package logger
