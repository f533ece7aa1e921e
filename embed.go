package webzine

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// share.js, analytics.js, chatbot.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
