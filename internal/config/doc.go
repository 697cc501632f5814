// Package config resolves the build configuration from defaults, a
// startgit.yaml file, STARTGIT_* environment variables and command line flags.
package config
