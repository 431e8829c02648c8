// Package tui provides the interactive scenario explorer: a Bubble Tea model
// that lets the user edit proposal inputs and watch the financial metrics
// and scenario table update.
package tui
