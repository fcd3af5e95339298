// Package emitter provides the ordered event source feeding a machine.
package emitter
