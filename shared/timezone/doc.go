// Package timezone centralizes time handling so every timestamp the service
// persists or formats is anchored to the configured hotel timezone rather
// than whatever the host machine happens to run in.
package timezone
