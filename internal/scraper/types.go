package scraper

// JobRecord is one listing as extracted from a results page.
type JobRecord struct {
	Title      string
	Link       string
	Experience string
	Company    string
	Location   string
	SalaryText string
	PayBasis   string
	SalaryLow  int
	SalaryHigh int
}

type Selectors struct {
	Listing         string `yaml:"listing"`
	TitleAttr       string `yaml:"title_attr"`
	CompanyAttr     string `yaml:"company_attr"`
	Link            string `yaml:"link"`
	IntroList       string `yaml:"intro_list"`
	Salary          string `yaml:"salary"`
	NegotiableLabel string `yaml:"negotiable_label"`
}

// DefaultSelectors matches the search results markup of 104.com.tw.
func DefaultSelectors() Selectors {
	return Selectors{
		Listing:         "article.b-block--top-bord.job-list-item.b-clearfix.js-job-item",
		TitleAttr:       "data-job-name",
		CompanyAttr:     "data-cust-name",
		Link:            "a",
		IntroList:       "ul.b-list-inline.b-clearfix.job-list-intro.b-content",
		Salary:          "div.job-list-tag.b-content",
		NegotiableLabel: "待遇面議",
	}
}
