// Package harness provides utilities for integration testing the productsearch CLI.
// It handles binary compilation, environment isolation, fixture tracking,
// command execution, output assertions and the suite lifecycle
// (pre-flight checks, shared fixtures, teardown).
//
// Environment variables managed:
//   - PRODUCTSEARCH_HOME: Isolated per environment (temp directory)
//   - PRODUCTSEARCH_DEBUG: Disabled to reduce noise
//   - PRODUCTSEARCH_BACKEND: local unless the caller selects vision
//   - GCLOUD_PROJECT, GOOGLE_APPLICATION_CREDENTIALS: supplied for local runs,
//     passed through for vision runs
package harness
