// Package recommendation implements the sidebar widget that suggests up to
// three posts from the author being read.
//
// The widget reads its location only through Router.Path: the username comes
// from the second path segment when the widget mounts, and the permlink to
// exclude comes from the fourth segment every time the list is derived. It
// fetches once per lifetime and drops any result that arrives after Unmount.
package recommendation
