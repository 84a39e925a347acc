package scraper

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrMissingField means a listing lacked an attribute or element the parser
// relies on. It aborts the whole page.
var ErrMissingField = errors.New("listing is missing an expected field")

type Scraper struct {
	selectors  Selectors
	linkScheme string
}

func NewScraper(selectors Selectors, linkScheme string) *Scraper {
	return &Scraper{
		selectors:  selectors,
		linkScheme: linkScheme,
	}
}

// ParseListing parses one results page. An empty slice with a nil error means
// the page had no listing containers.
func (s *Scraper) ParseListing(html string) ([]JobRecord, error) {
	return s.ParseListingReader(strings.NewReader(html))
}

func (s *Scraper) ParseListingReader(r io.Reader) ([]JobRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var (
		records []JobRecord
		extErr  error
	)
	doc.Find(s.selectors.Listing).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		rec, err := s.extract(sel)
		if err != nil {
			extErr = fmt.Errorf("listing %d: %w", i, err)
			return false
		}
		records = append(records, rec)
		return true
	})
	if extErr != nil {
		return nil, extErr
	}

	return records, nil
}

func (s *Scraper) extract(sel *goquery.Selection) (JobRecord, error) {
	var rec JobRecord

	title, ok := sel.Attr(s.selectors.TitleAttr)
	if !ok {
		return rec, missing("attribute " + s.selectors.TitleAttr)
	}
	company, ok := sel.Attr(s.selectors.CompanyAttr)
	if !ok {
		return rec, missing("attribute " + s.selectors.CompanyAttr)
	}

	href, ok := sel.Find(s.selectors.Link).First().Attr("href")
	if !ok {
		return rec, missing("link href")
	}

	items := sel.Find(s.selectors.IntroList).First().Find("li")
	if items.Length() < 2 {
		return rec, missing(fmt.Sprintf("intro list items (found %d, need 2)", items.Length()))
	}

	salaryText, err := s.salaryText(sel)
	if err != nil {
		return rec, err
	}

	rng := ParseSalary(salaryText)

	rec.Title = title
	rec.Link = s.linkScheme + href
	rec.Experience = items.Eq(1).Text()
	rec.Company = company
	rec.Location = items.Eq(0).Text()
	rec.SalaryText = salaryText
	rec.PayBasis = PayBasis(salaryText)
	rec.SalaryLow = rng.Lower.OrDefault()
	rec.SalaryHigh = rng.Upper.OrDefault()
	return rec, nil
}

// salaryText prefers the negotiable label span and falls back to the link text.
func (s *Scraper) salaryText(sel *goquery.Selection) (string, error) {
	box := sel.Find(s.selectors.Salary).First()
	if box.Length() == 0 {
		return "", missing("salary container")
	}

	if span := box.Find("span").First(); span.Length() > 0 && span.Text() == s.selectors.NegotiableLabel {
		return span.Text(), nil
	}

	a := box.Find("a").First()
	if a.Length() == 0 {
		return "", missing("salary link")
	}
	return a.Text(), nil
}

func missing(what string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, what)
}
