// Package scheduler pushes a daily recipe suggestion to every chat
// with a non-empty pantry.
package scheduler
