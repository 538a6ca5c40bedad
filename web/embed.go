// Package web holds embedded static assets and templates for surfx.
package web

import "embed"

// TemplateFS contains all HTML templates.
//
//go:embed templates
var TemplateFS embed.FS

// StaticFS contains the stylesheets served under /static.
//
//go:embed static
var StaticFS embed.FS
