package network

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const maxLineLength = 1024 * 1024

// ParseRoute parses one line of the network description:
//
//	<line name>: "<station 1>" <time 1> "<station 2>" <time 2> "<station 3>" ...
//
// The line name is everything before the first colon. A line without a
// colon yields a route without stations.
func ParseRoute(line string) (Route, error) {
	name, body, _ := strings.Cut(line, ":")
	return NewRoute(name, body)
}

// NewRoute builds a route from a line name and the station/time body that
// follows the colon.
func NewRoute(line, body string) (Route, error) {
	route := Route{Line: strings.TrimSpace(line)}

	tokens, err := Lex(body)
	if err != nil {
		return Route{}, err
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenStation:
			route.Stations = append(route.Stations, tok.Text)
		case TokenTime:
			route.Times = append(route.Times, tok.Value)
		}
	}

	return route, nil
}

// Load reads a network description, one route per line.
func Load(r io.Reader) (*Network, error) {
	net := New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		route, err := ParseRoute(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		net.AddRoute(route)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read network: %w", err)
	}

	return net, nil
}

// LoadFile opens path and loads the network it describes.
func LoadFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open network file: %w", err)
	}
	defer f.Close()

	net, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return net, nil
}

// LoadRoutes builds a network from routes that were already split into
// stations and times, in the given order.
func LoadRoutes(routes []Route) *Network {
	net := New()
	for _, r := range routes {
		net.AddRoute(r)
	}
	return net
}
