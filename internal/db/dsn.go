package db

import (
	"errors"
	"net/url"
	"strings"
)

// WithDBName points dsn at another database on the same server, keeping
// credentials and query parameters. A DSN without a scheme is read as
// postgres://.
func WithDBName(dsn, database string) (string, error) {
	if dsn == "" {
		return "", errors.New("empty DSN")
	}
	if !strings.Contains(dsn, "://") {
		dsn = "postgres://" + dsn
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", err
	}
	u.Path = "/" + strings.TrimPrefix(database, "/")
	return u.String(), nil
}
