package i18n

import (
	"embed"
	"io/fs"
)

//go:embed locales/*.json
var embedded embed.FS

// Catalogs holds the built-in message catalogs, one <lang>.json per language.
var Catalogs fs.FS = mustSub(embedded, "locales")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
