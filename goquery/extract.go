// Package goquery implements PDF link extraction from meeting-page HTML
// using the goquery library.
package goquery

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/knakagawa/shingidoc"
)

// categoryRule maps anchor keywords to a coarse category hint. Rules are
// checked in order; the first match wins.
type categoryRule struct {
	category shingidoc.Category
	keywords []string
}

var categoryRules = []categoryRule{
	{shingidoc.CategoryAgenda, []string{"議事次第", "次第", "agenda"}},
	{shingidoc.CategoryMinutes, []string{"議事録", "議事要旨", "minutes"}},
	{shingidoc.CategoryMaterial, []string{"資料", "material"}},
	{shingidoc.CategoryReference, []string{"参考資料", "参考", "reference"}},
	{shingidoc.CategoryParticipants, []string{"委員名簿", "出席者名簿", "participants"}},
}

var pdfFilenameRe = regexp.MustCompile(`(?i)([^/?#]+\.pdf)`)

// ExtractPDFLinks parses the page HTML and returns every PDF link as a raw
// candidate, with hrefs resolved against baseURL. Duplicate URLs are
// dropped, keeping the first occurrence in document order.
func ExtractPDFLinks(html, baseURL string) ([]shingidoc.RawLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, shingidoc.Errorf(shingidoc.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, shingidoc.Errorf(shingidoc.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []shingidoc.RawLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		absolute := resolved.String()

		if !isPDFLink(resolved) {
			return
		}
		if seen[absolute] {
			return
		}
		seen[absolute] = true

		text := normalizeSpace(sel.Text())
		filename := filenameFromURL(resolved, absolute)

		links = append(links, shingidoc.RawLink{
			Text:              text,
			URL:               absolute,
			Filename:          filename,
			EstimatedCategory: estimateCategory(text, filename, absolute),
		})
	})

	return links, nil
}

// isPDFLink reports whether the URL path names a PDF. A ".pdf" anywhere in
// the path counts; some sites serve PDFs through versioned paths like
// /doc.pdf/download.
func isPDFLink(u *url.URL) bool {
	p := strings.ToLower(u.Path)
	return strings.HasSuffix(p, ".pdf") || strings.Contains(p, ".pdf")
}

// filenameFromURL extracts the PDF filename from the URL path, falling back
// to the last ".pdf" segment anywhere in the URL, then to "unknown.pdf".
func filenameFromURL(u *url.URL, absolute string) string {
	p := u.Path
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	name := path.Base(p)
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return name
	}
	if m := pdfFilenameRe.FindString(absolute); m != "" {
		return m
	}
	return "unknown.pdf"
}

// estimateCategory assigns a coarse category from the anchor text, the
// filename, and the URL. It is only a hint; the scoring stage reclassifies
// every candidate.
func estimateCategory(text, filename, absolute string) shingidoc.Category {
	target := strings.ToLower(strings.Join([]string{text, filename, absolute}, " "))
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(target, strings.ToLower(kw)) {
				return rule.category
			}
		}
	}
	return shingidoc.CategoryOther
}

// normalizeSpace collapses runs of whitespace inside anchor text into
// single spaces, matching how nested markup renders.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
