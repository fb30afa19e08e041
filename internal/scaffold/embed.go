package scaffold

import (
	"embed"
	"io/fs"

	"github.com/spf13/afero"
)

//go:embed all:templates
var templateFS embed.FS

// templateRoot is the embedded directory holding one subdirectory per variant.
const templateRoot = "templates/make-it-red"

// Templates returns the built-in template root as a read-only filesystem.
func Templates() afero.Fs {
	sub, err := fs.Sub(templateFS, templateRoot)
	if err != nil {
		panic(err)
	}
	return afero.NewReadOnlyFs(afero.FromIOFS{FS: sub})
}

// DirTemplates returns an on-disk template root with the same layout as the
// built-in one.
func DirTemplates(dir string) afero.Fs {
	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
}
