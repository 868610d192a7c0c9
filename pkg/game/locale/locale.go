// Package locale loads the game's translations into gotext's global storage.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Default is used when a requested language has no catalogue.
const Default = "en"

const domain = "default"

//go:embed po/*.po
var catalogs embed.FS

// Get translates key and formats it with args. It is a variable so vet does
// not read translation keys as format strings.
var Get = gotext.Get

// Init loads the catalogue for lang and makes it the global gotext storage.
// Unknown languages fall back to Default; the returned string is the
// language actually loaded.
func Init(lang string) (string, error) {
	lang = normalize(lang)

	data, err := catalogs.ReadFile(path.Join("po", lang+".po"))
	if errors.Is(err, fs.ErrNotExist) {
		lang = Default
		data, err = catalogs.ReadFile(path.Join("po", Default+".po"))
	}
	if err != nil {
		return "", fmt.Errorf("read %s catalogue: %w", lang, err)
	}

	po := gotext.NewPo()
	po.Parse(data)

	l := gotext.NewLocale("", lang)
	l.AddTranslator(domain, po)
	gotext.SetStorage(l)

	return lang, nil
}

// Languages lists the embedded catalogues.
func Languages() []string {
	entries, err := catalogs.ReadDir("po")
	if err != nil {
		return []string{Default}
	}

	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".po"))
	}
	sort.Strings(langs)
	return langs
}

// normalize reduces "fr_FR.UTF-8" style names to "fr".
func normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "_-."); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return Default
	}
	return lang
}
