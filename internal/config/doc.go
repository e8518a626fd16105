// Package config manages user-level settings stored at ~/.addonctl/config.yaml:
// where the catalog and installed add-ons live, how many search results an
// install considers, the locale used to order listings and the log level.
package config
