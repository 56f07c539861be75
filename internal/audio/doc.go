// Package audio plays attention chimes for tour events. It uses the
// beep library to play WAV, OGG, and MP3 files with volume control.
// Playback failures never reach the caller's error path; a chime that
// cannot play is logged and dropped.
package audio
