// Package server is the WebSocket transport for the poker engine. It owns
// the HTTP listener, the per-connection read/write pumps, the room registry,
// and the HCL configuration file.
//
// Each connection is assigned a seat identity token at upgrade time and may
// occupy at most one seat in one room. The server delivers the room's
// per-seat state snapshots over the connection's buffered send channel;
// a connection that cannot keep up is dropped rather than allowed to stall
// the table.
package server
