package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

const DefaultLang = "en"

type Localizer struct {
	translations map[string]map[string]string
}

// New loads every <lang>.json message catalog found in fsys.
func New(fsys fs.FS) (*Localizer, error) {
	translations := make(map[string]map[string]string)

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		lang := strings.TrimSuffix(d.Name(), ".json")
		file, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		var langMap map[string]string
		if err := json.NewDecoder(file).Decode(&langMap); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		translations[lang] = langMap
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load language files: %w", err)
	}

	return &Localizer{translations: translations}, nil
}

// Languages lists the loaded catalogs.
func (l *Localizer) Languages() []string {
	langs := make([]string, 0, len(l.translations))
	for lang := range l.translations {
		langs = append(langs, lang)
	}
	return langs
}

// Get falls back to English and then to the key itself.
func (l *Localizer) Get(lang, key string) string {
	if langMap, ok := l.translations[lang]; ok {
		if value, ok := langMap[key]; ok {
			return value
		}
	}

	if langMap, ok := l.translations[DefaultLang]; ok {
		if value, ok := langMap[key]; ok {
			return value
		}
	}
	return key
}

// Format is Get followed by substitution of {placeholder} pairs, e.g.
// Format("en", "round_won", "name", "Alice", "word", "CAT").
func (l *Localizer) Format(lang, key string, pairs ...string) string {
	text := l.Get(lang, key)
	if len(pairs) == 0 {
		return text
	}
	oldnew := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(text)
}
