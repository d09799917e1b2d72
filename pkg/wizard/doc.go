// Package wizard implements the question, review and final-output flow that
// collects a business profile. A Wizard owns its answer record and is the
// only writer to it; every accepted write re-runs answers.Derive so derived
// fields follow their sources until the user sets them explicitly.
//
// All operations are synchronous. Rejected operations return an error and
// leave the wizard exactly as it was.
package wizard
