// Package app is the composition root for thwip.
//
// It loads configuration, opens the log, builds the catalogue client and
// route table, and hands them to one of the two surfaces:
//
//   - RunBrowser starts the Bubble Tea terminal browser
//   - RunServer serves the same routes as HTML pages
//
// Command line values in Options take precedence over the config file. The
// browser's start path is chosen from the --path flag, then the path saved
// in preferences when the last session exited, then start_path from config.
package app
