// Package models holds the payload types exchanged with the API. Every type
// implements serialization.Parsable and keeps undeclared payload fields in its
// additional data so they survive a decode and re-encode.
package models
