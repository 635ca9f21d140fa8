// Package session holds client-side session state: the login gate, the
// theme preference, and the route guard.
//
// State is explicit and injectable; the process root constructs one
// [Manager] and one [ThemeController] and hands them to consumers. There
// are no ambient singletons.
package session
