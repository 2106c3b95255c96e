// Package harness provides utilities for integration testing the pomar CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - POMAR_HOME: Isolated per test (temp directory)
//   - POMAR_SOUND: Disabled so tests stay silent
//   - POMAR_USER: Fixed so results do not depend on the OS user
package harness
