package web

import "embed"

// StaticFS holds the embedded static assets (panel stylesheet and icon).
//
//go:embed static/*
var StaticFS embed.FS
