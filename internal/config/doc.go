// Package config provides configuration structures and utilities for wikinav.
// It defines the navigation limits, page source politeness settings, scorer
// selection and report preferences, and loads the optional .wikinav file.
package config
