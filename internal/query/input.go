package query

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"transit-pathfinder/internal/network"
)

// ErrEmptyStationFile is returned for a station file without a first line.
var ErrEmptyStationFile = errors.New("station file is empty")

// ReadStationFile returns the first line of path as a station name.
func ReadStationFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read station file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read station file %s: %w", path, err)
		}
		return "", fmt.Errorf("%w: %s", ErrEmptyStationFile, path)
	}
	return scanner.Text(), nil
}

// ParseQueries reads one query per line, written as two quoted station
// names:
//
//	"Zoo" "Harbour"
//
// Blank lines are skipped.
func ParseQueries(r io.Reader) ([]Query, error) {
	var queries []Query

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}

		tokens, err := network.Lex(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if len(tokens) != 2 || tokens[0].Kind != network.TokenStation || tokens[1].Kind != network.TokenStation {
			return nil, fmt.Errorf("line %d: want two quoted station names", lineNumber)
		}
		queries = append(queries, Query{Start: tokens[0].Text, Target: tokens[1].Text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return queries, nil
}

// ReadQueriesFile parses the queries stored in path.
func ReadQueriesFile(path string) ([]Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open queries file: %w", err)
	}
	defer f.Close()

	queries, err := ParseQueries(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return queries, nil
}
