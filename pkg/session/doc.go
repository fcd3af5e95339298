/*
Package session implements session management and persistence orchestration.

A session is one running machine (one chess game) persisted as a domain.Snapshot.
The Manager serializes access per session ID with an in-process lock, optionally
backed by a distributed lock so several replicas can serve the same games.
*/
package session
