package catalog

import (
	"embed"
	"io/fs"
)

//go:embed data/questions.yaml data/policies.yaml data/policies/*.html
var embeddedData embed.FS

// EmbeddedFS returns the bundled catalog data rooted at data/.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		// data/ is part of the embed pattern; unreachable.
		panic(err)
	}
	return sub
}
