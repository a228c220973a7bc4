package network

import (
	"errors"
	"testing"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Token
	}{
		{
			name: "single word stations",
			body: ` "A" 5 "B"`,
			want: []Token{
				{Kind: TokenStation, Text: "A"},
				{Kind: TokenTime, Text: "5", Value: 5},
				{Kind: TokenStation, Text: "B"},
			},
		},
		{
			name: "station with spaces",
			body: `"Hauptbahnhof Nord" 3 "Am   Markt"`,
			want: []Token{
				{Kind: TokenStation, Text: "Hauptbahnhof Nord"},
				{Kind: TokenTime, Text: "3", Value: 3},
				{Kind: TokenStation, Text: "Am Markt"},
			},
		},
		{
			name: "tabs between tokens",
			body: "\t\"A\"\t12\t\"B C\"",
			want: []Token{
				{Kind: TokenStation, Text: "A"},
				{Kind: TokenTime, Text: "12", Value: 12},
				{Kind: TokenStation, Text: "B C"},
			},
		},
		{
			name: "lone quote opens a name",
			body: `" Depot" 1 "X"`,
			want: []Token{
				{Kind: TokenStation, Text: " Depot"},
				{Kind: TokenTime, Text: "1", Value: 1},
				{Kind: TokenStation, Text: "X"},
			},
		},
		{
			name: "empty body",
			body: "   ",
			want: []Token{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.body)
			if err != nil {
				t.Fatalf("Lex(%q) returned error: %v", tt.body, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Lex(%q) = %v, want %v", tt.body, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexUnterminatedStation(t *testing.T) {
	_, err := Lex(`"A" 4 "Never Closed`)
	if !errors.Is(err, ErrUnterminatedStation) {
		t.Fatalf("expected ErrUnterminatedStation, got %v", err)
	}
}

func TestLexInvalidTime(t *testing.T) {
	if _, err := Lex(`"A" five "B"`); err == nil {
		t.Fatal("expected an error for a non-numeric travel time")
	}
}
