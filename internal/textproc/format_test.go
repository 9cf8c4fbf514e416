package textproc

import (
	"reflect"
	"strings"
	"testing"
)

func TestSentences(t *testing.T) {
	in := "Il progetto procede molto bene. Abbiamo completato la prima fase del lavoro! Ora possiamo passare alla fase due?"
	want := []string{
		"Il progetto procede molto bene.",
		"Abbiamo completato la prima fase del lavoro!",
		"Ora possiamo passare alla fase due?",
	}
	if got := Sentences(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Sentences() = %#v, want %#v", got, want)
	}
}

func TestSentencesMergesFragments(t *testing.T) {
	in := "Questa è una frase completa e abbastanza lunga. Sì."
	got := Sentences(in)
	if len(got) != 1 {
		t.Fatalf("Sentences() = %#v, want single merged sentence", got)
	}
	if !strings.HasSuffix(got[0], "Sì.") {
		t.Errorf("fragment not merged: %q", got[0])
	}
}

func TestSentencesEmpty(t *testing.T) {
	if got := Sentences("  "); got != nil {
		t.Errorf("Sentences(blank) = %#v, want nil", got)
	}
}

func TestParagraphs(t *testing.T) {
	sents := []string{"Uno.", "Due.", "Tre.", "Quattro.", "Cinque."}
	got := Paragraphs(sents, 3)
	want := []string{"Uno. Due. Tre.", "Quattro. Cinque."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paragraphs() = %#v, want %#v", got, want)
	}
}

func TestParagraphsEmphaticBreak(t *testing.T) {
	sents := []string{"Davvero?!", "Sì, davvero.", "Incredibile."}
	got := Paragraphs(sents, 3)
	want := []string{"Davvero?!", "Sì, davvero. Incredibile."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paragraphs() = %#v, want %#v", got, want)
	}
}

func TestFormat(t *testing.T) {
	in := "Prima frase di esempio molto chiara. Seconda frase di esempio ancora valida. Terza frase per chiudere il gruppo. Quarta frase che apre il nuovo paragrafo."
	clean, formatted := Format(in)
	if clean == "" {
		t.Fatal("Format() returned empty clean text")
	}
	paras := strings.Split(formatted, "\n\n")
	if len(paras) != 2 {
		t.Errorf("Format() produced %d paragraphs, want 2: %#v", len(paras), paras)
	}
}

func TestFormatWatermarkOnly(t *testing.T) {
	clean, formatted := Format("Sottotitoli creati dalla comunità Amara.org")
	if clean != "" || formatted != "" {
		t.Errorf("Format(watermark) = (%q, %q), want empty", clean, formatted)
	}
}
