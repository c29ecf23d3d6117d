// Package engine records and replays input macros.
//
// A Macro owns one EventLog and moves between three states: Idle, Recording
// and Playing. Recording installs global hooks through platform.Hooker and
// appends every captured event to the log. Playing takes a snapshot of the
// log and replays it on a background goroutine through a Dispatcher,
// sleeping between events to reproduce the recorded timing. Recording and
// playing are mutually exclusive.
package engine
