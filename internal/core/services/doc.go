// Package services implements the driving port interfaces.
// Services orchestrate calls to driven ports (the assistant gateway and
// the config store) and apply their results to the domain workspace.
//
// Services are pure Go with no CGO.
package services
