// Package logger is a standardized event logging framework for shell sessions.
//
// Events are stored as newline delimited JSON objects, one per line, using the
// protobuf JSON mapping of a google.protobuf.Struct.
package logger
