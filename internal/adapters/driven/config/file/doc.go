// Package file keeps compass settings in a TOML file.
//
// The file lives at ~/.compass/config.toml. Keys use dot notation
// ("store.backend", "session.role"), and each segment becomes a TOML table.
package file
