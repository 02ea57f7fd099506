package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl assets/*
var embedded embed.FS

// TemplatesFS returns the built-in pongo2 templates.
func TemplatesFS() fs.FS { return subdir("templates") }

// AssetsFS returns the scripts and stylesheets that component descriptors
// reference by name.
func AssetsFS() fs.FS { return subdir("assets") }

func subdir(name string) fs.FS {
	sub, err := fs.Sub(embedded, name)
	if err != nil {
		panic(err)
	}
	return sub
}
