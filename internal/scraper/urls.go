package scraper

import (
	"fmt"
	"net/url"
)

// URLBuilder produces search result URLs for one keyword and area filter.
type URLBuilder struct {
	base    string
	keyword string
	area    string
}

// NewURLBuilder takes area already joined and escaped.
func NewURLBuilder(base, keyword, area string) *URLBuilder {
	return &URLBuilder{base: base, keyword: url.QueryEscape(keyword), area: area}
}

// Page returns the URL for a 1-based page number. Later pages carry the
// sort, recommendation and language parameters the site adds when paging.
func (b *URLBuilder) Page(page int) string {
	if page <= 1 {
		return fmt.Sprintf("%s?jobsource=index_s&keyword=%s&area=%s&mode=s&page=1",
			b.base, b.keyword, b.area)
	}
	return fmt.Sprintf("%s?ro=0&kwop=7&keyword=%s&expansionType=area%%2Cspec%%2Ccom%%2Cjob%%2Cwf%%2Cwktm"+
		"&area=%s&order=14&asc=0&page=%d&mode=s&jobsource=index_s&langFlag=0&langStatus=0&recommendJob=1&hotJob=1",
		b.base, b.keyword, b.area, page)
}
