package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"transit-pathfinder/internal/network"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// FetchRoutes reads the network description from transit_routes. Each row
// holds a line name and the quoted station/time body of one route, in the
// same notation as the network file. Rows come back in route_order so that
// equal-cost ties resolve as they would for the file.
func FetchRoutes(ctx context.Context, db *sql.DB) ([]network.Route, error) {
	q := `SELECT line_name, stations FROM transit_routes ORDER BY route_order, line_name`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query transit_routes: %w", err)
	}
	defer rows.Close()

	var routes []network.Route
	for rows.Next() {
		var line, body string
		if err := rows.Scan(&line, &body); err != nil {
			return nil, err
		}
		route, err := network.NewRoute(line, body)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", line, err)
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

// LoadNetwork builds the network stored in db.
func LoadNetwork(ctx context.Context, db *sql.DB) (*network.Network, error) {
	routes, err := FetchRoutes(ctx, db)
	if err != nil {
		return nil, err
	}
	return network.LoadRoutes(routes), nil
}
