package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ResolveLatestNetworkDBName returns the db_name with the most recent imported_at
// from public.latest_network_imports where network_name matches name.
func ResolveLatestNetworkDBName(ctx context.Context, meta *sql.DB, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("network name is required")
	}
	// Fully qualified to the public schema (assumes we are connected to the 'postgres' database)
	q := `
SELECT db_name
FROM public.latest_network_imports
WHERE network_name ILIKE $1
ORDER BY imported_at DESC
LIMIT 1`
	var dbName sql.NullString
	if err := meta.QueryRowContext(ctx, q, name).Scan(&dbName); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("no database found for network %q", name)
		}
		return "", err
	}
	if !dbName.Valid || dbName.String == "" {
		return "", fmt.Errorf("empty db_name for network %q", name)
	}
	return dbName.String, nil
}

// Connect opens the database holding the network. With a network name the
// DSN is first pointed at the cluster's 'postgres' database to look up the
// latest import, then at the database that import wrote to.
func Connect(ctx context.Context, baseDSN, networkName string) (*sql.DB, error) {
	finalDSN := baseDSN
	if networkName != "" {
		rootDSN, err := WithDBName(baseDSN, "postgres")
		if err != nil {
			return nil, fmt.Errorf("invalid base DSN: %w", err)
		}
		meta, err := Open(rootDSN)
		if err != nil {
			return nil, fmt.Errorf("db open (meta): %w", err)
		}
		defer meta.Close()
		if err := Ping(ctx, meta); err != nil {
			return nil, fmt.Errorf("db ping (meta): %w", err)
		}
		name, err := ResolveLatestNetworkDBName(ctx, meta, networkName)
		if err != nil {
			return nil, err
		}
		finalDSN, err = WithDBName(baseDSN, name)
		if err != nil {
			return nil, fmt.Errorf("compose DSN: %w", err)
		}
	}

	conn, err := Open(finalDSN)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	if err := Ping(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return conn, nil
}
