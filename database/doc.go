// Package database selects and wires a persistence backend.
//
// Connect picks SQLite or PostgreSQL from Config.Type, pings the
// connection, runs the idempotent migrations, and hands back the three
// repositories sharing one connection handle. Backend choice happens once
// at startup; nothing downstream branches on it.
package database
