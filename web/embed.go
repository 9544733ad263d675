// Package web holds the embedded front-end: the page that talks to the phone
// bridge over a WebSocket.
package web

import "embed"

// FS contains index.html and the assets directory.
//
//go:embed index.html assets
var FS embed.FS
