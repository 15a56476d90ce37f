// Package session holds the signed-in member's client-side state: the viewer
// profile, the last fetched feed, per-post interaction flags, translations
// and the post composer. Remote calls go through client.Client; the last feed
// is mirrored into the local SQLite cache so it can be shown while offline.
package session
