// Package web хранит HTML-шаблоны, вшитые в бинарник.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
