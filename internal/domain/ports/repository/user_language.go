package repository

import "context"

// UserLanguageRepository stores per-user interface language. Get returns
// model.DefaultLang when the user never chose one.
type UserLanguageRepository interface {
	Set(ctx context.Context, tx Tx, userID int64, lang string) error
	Get(ctx context.Context, tx Tx, userID int64) (string, error)
	Count(ctx context.Context, tx Tx) (int, error)
}
