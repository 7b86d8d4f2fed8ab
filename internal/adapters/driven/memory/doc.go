// Package memory provides in-memory driven adapters: a config store and a
// scripted assistant gateway. They back tests and the --demo mode.
package memory
