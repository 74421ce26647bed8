package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"aktau-afisha-bot/internal/domain/model"
)

//go:embed locales
var LocalesFS embed.FS

// Translator holds the string table for one language.
type Translator struct {
	translations map[string]string
}

func NewTranslator(fsys fs.FS, langCode string) (*Translator, error) {
	filePath := filepath.Join("locales", fmt.Sprintf("%s.yaml", langCode))
	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("read translation file %s: %w", filePath, err)
	}

	var translations map[string]string
	if err := yaml.Unmarshal(data, &translations); err != nil {
		return nil, fmt.Errorf("parse translation file %s: %w", filePath, err)
	}
	return &Translator{translations: translations}, nil
}

// T returns the translated string for key, formatting args into it when
// given. An unknown key comes back verbatim so a missing translation is
// visible in chat instead of silently dropped.
func (t *Translator) T(key string, args ...interface{}) string {
	format, ok := t.translations[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// Bundle maps language codes to their translators.
type Bundle map[string]*Translator

func NewBundle(fsys fs.FS, langs ...string) (Bundle, error) {
	b := make(Bundle, len(langs))
	for _, lang := range langs {
		tr, err := NewTranslator(fsys, lang)
		if err != nil {
			return nil, err
		}
		b[lang] = tr
	}
	return b, nil
}

// T translates key for lang, falling back to the default language when lang
// has no table.
func (b Bundle) T(lang, key string, args ...interface{}) string {
	tr, ok := b[lang]
	if !ok {
		tr, ok = b[model.DefaultLang]
		if !ok {
			return key
		}
	}
	return tr.T(key, args...)
}
