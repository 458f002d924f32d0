// Package page contains the screens of confsched.
//
// Home is the root component. It owns the Schedule and Settings pages, shows
// the page selected by the last ChangeMode action and draws a footer with the
// key bindings of the current mode and the last error.
//
// Pages never hold the schedule themselves. They read it from a
// session.Session and submit every change as a mutation, so the session stays
// the single owner of the data.
package page
