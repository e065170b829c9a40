package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/partials/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	StylesheetName = "portfolio.css"
	ScriptName     = "portfolio.js"
)

// Asset keys resolved through theme.RendererConfig.AssetURL.
const (
	StylesheetAssetKey = "portfolio.stylesheet"
	ScriptAssetKey     = "portfolio.script"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet and script so callers can serve
// them over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}

func defaultScript() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+ScriptName)
	if err != nil {
		return ""
	}
	return string(data)
}
