package model

// Supported interface languages. Russian is the default when a user never
// picked one.
const (
	LangRU = "ru"
	LangKZ = "kz"
	LangEN = "en"

	DefaultLang = LangRU
)

// UserLanguage stores a user's interface language choice.
type UserLanguage struct {
	UserID int64
	Lang   string
}

func IsSupportedLang(code string) bool {
	switch code {
	case LangRU, LangKZ, LangEN:
		return true
	}
	return false
}
