// Package logger provides structured logging for the injector packages
// using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("di")
//	log.Debug("module indexed", logger.Fields(logger.FieldModule, "app"))
package logger
