package document

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	formatted := "Prima parte del discorso con la frase iniziale.\n\nSeconda parte del discorso con altro contenuto."
	html, err := Build("Riunione di lunedì", "Gianluca P.", formatted)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, want := range []string{
		"<h1>Riunione di lunedì</h1>",
		`<p class="lead">Prima parte del discorso con la frase iniziale.</p>`,
		"<p>Seconda parte del discorso con altro contenuto.</p>",
		"Gianluca P. · Transcription WOW",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Build() output missing %q", want)
		}
	}
}

func TestBuildHeading(t *testing.T) {
	formatted := "Punti principali:\n\nIl primo punto trattato nella riunione."
	html, err := Build("Titolo", "Brand", formatted)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(html, "<h3>Punti principali</h3>") {
		t.Errorf("heading paragraph not rendered as h3:\n%s", html)
	}
	// The paragraph after a heading is still the lead.
	if !strings.Contains(html, `<p class="lead">Il primo punto trattato nella riunione.</p>`) {
		t.Errorf("lead paragraph missing")
	}
}

func TestBuildEscapesHTML(t *testing.T) {
	html, err := Build("<script>", "Brand", "Testo con <b>markup</b> da neutralizzare qui dentro.")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if strings.Contains(html, "<b>markup</b>") {
		t.Error("user markup was not escaped")
	}
	if strings.Contains(html, "<title>Brand · <script></title>") {
		t.Error("title was not escaped")
	}
}

func TestBuildEmpty(t *testing.T) {
	html, err := Build("Vuoto", "Brand", "")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(html, "<h1>Vuoto</h1>") {
		t.Error("empty document should still carry its title")
	}
}
