package match

import (
	"testing"

	"github.com/fcstern/bfvcal/internal/event"
)

func sternClassifier() *Classifier {
	id := NewIdentity("FC Stern München", "FC Stern München U9-I", []string{"München"})
	return NewClassifier(id)
}

func TestClassify(t *testing.T) {
	c := sternClassifier()

	tests := []struct {
		name    string
		summary string
		want    event.HomeAway
	}{
		{"home fixture", "FC Stern München U9-I - FC Bayern U9-I", event.Home},
		{"away fixture", "FC Bayern U9-I - FC Stern München U9-I", event.Away},
		{"unrelated teams stay unknown", "TSV Forstenried - SV Waldeck", event.Unknown},
		{"no separator stays unknown", "Saisoneröffnung am Vereinsgelände", event.Unknown},
		{"en dash separator", "FC Stern München – FC Bayern", event.Home},
		{"placeholder separator", "FC Stern München U9 - : - FC Bayern U9", event.Home},
		{"placeholder separator away", "FC Bayern U9 - : - FC Stern München U9", event.Away},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.summary); got.HomeAway != tt.want {
				t.Errorf("Classify(%q) = %v, expected %v", tt.summary, got.HomeAway, tt.want)
			}
		})
	}
}

func TestClassifySingleTokenIdentity(t *testing.T) {
	// One distinguishing token is enough when the identity has only one.
	id := NewIdentity("TSV Forstenried", "", []string{"München"})
	c := NewClassifier(id)

	if got := c.Classify("TSV Forstenried U11 - FC Stern U11"); got.HomeAway != event.Home {
		t.Errorf("expected home for single-token host match, got %v", got.HomeAway)
	}
}

func TestClassifyRequiresTwoHitsForMultiTokenIdentity(t *testing.T) {
	id := NewIdentity("SpVgg Thalkirchen-Süd", "", nil)
	c := NewClassifier(id)

	// Only "sud" overlaps: not enough for a two-token identity.
	if got := c.Classify("SV Süd - FC Nord"); got.HomeAway != event.Unknown {
		t.Errorf("expected unknown for single hit, got %v", got.HomeAway)
	}
	if got := c.Classify("SpVgg Thalkirchen-Süd - FC Nord"); got.HomeAway != event.Home {
		t.Errorf("expected home for full match, got %v", got.HomeAway)
	}
}

func TestClassifyKinderfestival(t *testing.T) {
	c := sternClassifier()

	tests := []struct {
		name    string
		summary string
		want    event.HomeAway
	}{
		{"hosting festival", "FC Stern München U9 - Kinderfestival - FC Bayern U9", event.Home},
		{"visiting festival", "FC Bayern U9 - Kinderfestival - FC Stern München U9", event.Away},
		{"unrelated festival", "TSV Forstenried U9 - Kinderfestival - SV Waldeck U9", event.Unknown},
		// Token overlap would call this home; the strict equality rule
		// must not.
		{"similar host name", "FC Stern Mering U9 - Kinderfestival - FC Bayern U9", event.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.summary)
			if !got.Festival {
				t.Errorf("Classify(%q) did not take the festival path", tt.summary)
			}
			if got.HomeAway != tt.want {
				t.Errorf("Classify(%q) = %v, expected %v", tt.summary, got.HomeAway, tt.want)
			}
		})
	}
}

func TestInferLocation(t *testing.T) {
	const venue = "Feldbergstraße 55, 81825 München"

	tests := []struct {
		name     string
		verdict  event.HomeAway
		sentinel string
		want     string
	}{
		{"home gets venue", event.Home, NoInfoSentinel, venue},
		{"away gets sentinel", event.Away, NoInfoSentinel, AwaySentinel},
		{"unknown gets ics sentinel", event.Unknown, NoInfoSentinel, NoInfoSentinel},
		{"unknown falls through on html path", event.Unknown, AwaySentinel, AwaySentinel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferLocation(tt.verdict, venue, tt.sentinel); got != tt.want {
				t.Errorf("InferLocation(%v) = %q, expected %q", tt.verdict, got, tt.want)
			}
		})
	}
}
