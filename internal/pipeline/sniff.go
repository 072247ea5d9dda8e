package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ContentType is the sniffed shape of an input document.
type ContentType string

const (
	ContentTypeArticle    ContentType = "article"
	ContentTypeTranscript ContentType = "transcript"
	ContentTypeHTML       ContentType = "html"
)

var (
	timestampLine = regexp.MustCompile(`^\[?\d{1,2}:\d{2}(?::\d{2})?\]?`)
	speakerLine   = regexp.MustCompile(`^[A-Z][A-Z .'-]{1,30}:\s`)
)

// Sniff guesses the content type of raw input: HTML markup, a
// timestamped/speaker-tagged transcript, or plain article text.
func Sniff(text string) ContentType {
	trimmed := strings.TrimSpace(text)
	lowered := strings.ToLower(trimmed)
	if strings.HasPrefix(lowered, "<!doctype") || strings.HasPrefix(lowered, "<html") ||
		strings.Contains(lowered, "<body") || strings.Contains(lowered, "<p>") {
		return ContentTypeHTML
	}

	marked := 0
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if timestampLine.MatchString(line) || speakerLine.MatchString(line) {
			marked++
		}
		if marked >= 2 {
			return ContentTypeTranscript
		}
	}

	return ContentTypeArticle
}

// StripHTML reduces HTML markup to its visible text, skipping script,
// style and other non-content elements.
func StripHTML(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}
