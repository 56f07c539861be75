// Package tour sequences one-time spotlight popups across the named
// pages of an application. A Manager owns the pages and the shared seen
// set, a Sequencer enforces at-most-one-visible ordering within a page,
// and hosts bind rendering to the visibility flags and flip them false
// to dismiss.
package tour
