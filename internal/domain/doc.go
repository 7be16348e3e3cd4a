// Package domain defines the core business entities of the tracker:
// life logs, reminders, and digital assets.
package domain
