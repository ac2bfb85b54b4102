/*
Package session implements session management and persistence orchestration.

It maps session IDs to timeline controllers, integrating the in-process
registry with an optional long-term storage adapter so sessions can be
resumed after a restart.
*/
package session
