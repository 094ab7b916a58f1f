// Package config defines the deployment configuration model.
//
// A [Deployment] is assembled once per invocation from an optional YAML file
// and command-line flags, defaulted, validated, and then passed by value into
// every pipeline stage. Nothing mutates it after construction.
package config
