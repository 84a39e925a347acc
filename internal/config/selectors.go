package config

import (
	"fmt"

	"job104-crawler/internal/scraper"
)

// validateSelectors checks that every selector the parser needs is set.
func validateSelectors(s *scraper.Selectors) error {
	if s.Listing == "" {
		return fmt.Errorf("selectors.listing is required")
	}
	if s.TitleAttr == "" {
		return fmt.Errorf("selectors.title_attr is required")
	}
	if s.CompanyAttr == "" {
		return fmt.Errorf("selectors.company_attr is required")
	}
	if s.Link == "" {
		return fmt.Errorf("selectors.link is required")
	}
	if s.IntroList == "" {
		return fmt.Errorf("selectors.intro_list is required")
	}
	if s.Salary == "" {
		return fmt.Errorf("selectors.salary is required")
	}
	if s.NegotiableLabel == "" {
		return fmt.Errorf("selectors.negotiable_label is required")
	}
	return nil
}
