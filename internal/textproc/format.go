package textproc

import (
	"regexp"
	"strings"
)

var (
	whitespaceRx  = regexp.MustCompile(`\s+`)
	sentenceEndRx = regexp.MustCompile(`([.!?])\s+`)
	wordTokenRx   = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ0-9']+`)
)

// Sentences splits text into sentences on terminal punctuation. Tiny
// fragments (two tokens or fewer and under ten characters) are glued onto
// the previous sentence so that abbreviations and stray interjections do not
// become sentences of their own.
func Sentences(s string) []string {
	s = strings.TrimSpace(whitespaceRx.ReplaceAllString(s, " "))
	if s == "" {
		return nil
	}

	marked := sentenceEndRx.ReplaceAllString(s, "$1\x00")
	parts := strings.Split(marked, "\x00")

	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tokens := wordTokenRx.FindAllString(p, -1)
		if len(tokens) <= 2 && len(p) < 10 && len(out) > 0 {
			out[len(out)-1] = strings.TrimSpace(out[len(out)-1] + " " + p)
		} else {
			out = append(out, p)
		}
	}
	return out
}

// Paragraphs groups sentences into paragraphs of at most maxPerPara
// sentences, breaking early after emphatic endings ("?!", "!?").
func Paragraphs(sentences []string, maxPerPara int) []string {
	if maxPerPara <= 0 {
		maxPerPara = 3
	}
	var paras []string
	var buf []string
	for _, s := range sentences {
		buf = append(buf, s)
		if len(buf) >= maxPerPara || strings.HasSuffix(s, "?!") || strings.HasSuffix(s, "!?") {
			paras = append(paras, strings.Join(buf, " "))
			buf = nil
		}
	}
	if len(buf) > 0 {
		paras = append(paras, strings.Join(buf, " "))
	}
	return paras
}

// Format runs the full cleanup pipeline: sanitize, sentence split, paragraph
// grouping. The result joins paragraphs with blank lines, the layout the
// HTML builder and the web client both expect.
func Format(raw string) (clean, formatted string) {
	clean = Sanitize(raw)
	if clean == "" {
		return "", ""
	}
	paras := Paragraphs(Sentences(clean), 3)
	return clean, strings.Join(paras, "\n\n")
}
