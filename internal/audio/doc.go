// Package audio selects and plays cargo-clicker's responses.
// It uses the beep library to decode WAV, OGG, and MP3 responses and plays
// them at a slightly randomized speed, blocking until playback finishes.
package audio
