package scraper

import (
	"fmt"
	"strings"
)

type listingFixture struct {
	Title, Company, Href, Location, Experience string
	// SalaryHTML is the inner markup of the salary container.
	SalaryHTML string
}

func listingHTML(f listingFixture) string {
	return fmt.Sprintf(`
<article class="b-block--top-bord job-list-item b-clearfix js-job-item" data-job-name="%s" data-cust-name="%s">
  <div class="b-block__left">
    <h2 class="b-tit"><a href="%s" class="js-job-link">%s</a></h2>
    <ul class="b-list-inline b-clearfix job-list-intro b-content">
      <li>%s</li><li>%s</li><li>大學</li>
    </ul>
    <div class="job-list-tag b-content">%s</div>
  </div>
</article>`, f.Title, f.Company, f.Href, f.Title, f.Location, f.Experience, f.SalaryHTML)
}

func pageHTML(listings ...listingFixture) string {
	var b strings.Builder
	b.WriteString("<html><body><div id=\"js-job-content\">")
	for _, l := range listings {
		b.WriteString(listingHTML(l))
	}
	b.WriteString("</div></body></html>")
	return b.String()
}
