// Package config loads runtime configuration for the hoverboard CLI.
//
// Sources, lowest precedence first: built-in defaults, an optional JSON
// file named by -c/-config, then the flags
//
//	-a string   address:port of the server's gRPC endpoint
//	-i int      online status check interval (seconds)
//	-s string   directory for the local session database
//
// JSON keys: server_endpoint_addr, online_check_interval ("3s"),
// session_dir, max_avatar_bytes.
package config
