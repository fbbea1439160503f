package folio

import "embed"

// EmbeddedAssets contains the scripts shipped with folio: reveal.js,
// colormode.js and search.js.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
