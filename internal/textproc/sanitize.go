// Package textproc cleans raw transcription output and reshapes it into
// readable paragraphs. Transcription models trained on subtitle corpora leak
// subtitle watermarks ("Sottotitoli creati dalla comunità...", "Subtitles by
// ...") and sign-off phrases into silence; everything here exists to strip
// that noise before the text reaches the user.
package textproc

import (
	"regexp"
	"strings"
)

var watermarkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsottotitoli\s+(?:creati|a\s*cura|realizzati|forniti)\s+(?:da(?:lla|l)?\s*)?.*`),
	regexp.MustCompile(`(?i)\bsottotitoli\s+a\s*cura\s+di\s*.*`),
	regexp.MustCompile(`(?i)\bsottotitoli\s+.*`),
	regexp.MustCompile(`(?i)\bsubtitles?\s+(?:by|created|provided)\b.*`),
	regexp.MustCompile(`(?i)\bcaptions?\s+(?:by|created|provided)\b.*`),
	regexp.MustCompile(`(?i)(?:comunit[àa].{0,20})?amara\.org`),
}

// Sign-off phrases the model hallucinates on trailing silence. Only applied
// when they make up (almost) the whole result.
var signOffPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)al prossimo episodio\.?$`),
	regexp.MustCompile(`(?i)alla prossima\.?$`),
	regexp.MustCompile(`(?i)grazie per l'attenzione\.?$`),
	regexp.MustCompile(`(?i)fine\.?$`),
	regexp.MustCompile(`(?i)the end\.?$`),
}

var (
	subtitleLineRx   = regexp.MustCompile(`(?i)^\s*(?:-|\(|\[)?\s*sottotitoli\b`)
	lineBreakRx      = regexp.MustCompile(`[\r\n]+`)
	multiSpaceRx     = regexp.MustCompile(`\s{2,}`)
	spaceBeforePunct = regexp.MustCompile(`\s+([,.!?;:])`)
)

// Sanitize strips subtitle watermarks and hallucinated sign-offs from a raw
// transcript and normalizes whitespace. It returns "" when nothing real
// remains.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	t := s
	for _, rx := range watermarkPatterns {
		t = rx.ReplaceAllString(t, " ")
	}

	var lines []string
	for _, ln := range lineBreakRx.Split(t, -1) {
		if subtitleLineRx.MatchString(ln) {
			continue
		}
		lines = append(lines, ln)
	}
	t = strings.Join(lines, "\n")

	t = multiSpaceRx.ReplaceAllString(t, " ")
	t = spaceBeforePunct.ReplaceAllString(t, "$1")
	t = strings.TrimSpace(t)
	if t == "" {
		return ""
	}

	norm := strings.ToLower(strings.TrimSpace(t))
	if len(strings.Fields(norm)) <= 5 {
		for _, rx := range signOffPatterns {
			if rx.MatchString(norm) {
				return ""
			}
		}
	}
	return t
}
