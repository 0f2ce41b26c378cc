package match

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FC Stern München", "fc stern munchen"},
		{"Straße", "strasse"},
		{"SpVgg Thalkirchen-Süd e.V.", "spvgg thalkirchen sud e v"},
		{"  TSV  Forstenried ", "tsv forstenried"},
		{"FC Bayern U9-I", "fc bayern u9 i"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestNewIdentity(t *testing.T) {
	tests := []struct {
		name     string
		club     string
		team     string
		city     []string
		expected []string
	}{
		{
			"club type and city dropped",
			"FC Stern München", "FC Stern München U9-I",
			[]string{"München"},
			[]string{"stern"},
		},
		{
			"age group markers dropped",
			"TSV Forstenried", "TSV Forstenried U11",
			[]string{"München"},
			[]string{"forstenried"},
		},
		{
			"multi token identity",
			"SpVgg Thalkirchen-Süd", "",
			nil,
			[]string{"thalkirchen", "sud"},
		},
		{
			"short tokens dropped",
			"SV Am Hart e.V.", "",
			nil,
			[]string{"hart"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewIdentity(tt.club, tt.team, tt.city)
			if !reflect.DeepEqual(id.Tokens, tt.expected) {
				t.Errorf("NewIdentity(%q, %q) tokens = %v, expected %v", tt.club, tt.team, id.Tokens, tt.expected)
			}
		})
	}
}

func TestStripTeamSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fc stern munchen u9 i", "fc stern munchen"},
		{"fc stern munchen u11", "fc stern munchen"},
		{"tsv forstenried ii", "tsv forstenried"},
		{"fc bayern", "fc bayern"},
	}
	for _, tt := range tests {
		if got := StripTeamSuffix(tt.in); got != tt.want {
			t.Errorf("StripTeamSuffix(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}
