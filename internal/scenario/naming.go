package scenario

import (
	"fmt"
	"strings"

	"github.com/shivbijlani/lifetime/internal/domain"
)

var (
	childKeywords = []string{"child", "kid", "college"}
	elderKeywords = []string{"elder", "parent", "care"}
)

func mortgageName(n int) string {
	return fmt.Sprintf("Mortgage %d", n)
}

// supportName returns the canonical display name for the n-th (1-based) plan
// of a category.
func supportName(category domain.SupportCategory, n int) string {
	if category == domain.CategoryChildSupport {
		return fmt.Sprintf("Child %d", n)
	}
	if n == 1 {
		return "Parent"
	}
	return fmt.Sprintf("Parent %d", n)
}

// parseCategory maps an explicit category/type value to a category.
func parseCategory(s string) (domain.SupportCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eldercare", "elder_care", "elder-care", "elder", "parent":
		return domain.CategoryElderCare, true
	case "childsupport", "child_support", "child-support", "child", "kid", "kids":
		return domain.CategoryChildSupport, true
	}
	return "", false
}

// inferCategory classifies a support entry by keywords in its name. Child
// keywords win so that "child care" is child support.
func inferCategory(name string) domain.SupportCategory {
	lower := strings.ToLower(name)
	for _, kw := range childKeywords {
		if strings.Contains(lower, kw) {
			return domain.CategoryChildSupport
		}
	}
	for _, kw := range elderKeywords {
		if strings.Contains(lower, kw) {
			return domain.CategoryElderCare
		}
	}
	return domain.CategoryElderCare
}

// renamePlans applies canonical names in place, keeping order. Supports are
// numbered within their category; mortgages keep explicit names.
func renamePlans(p *domain.ScenarioParams) {
	counts := map[domain.SupportCategory]int{}
	for i := range p.Supports {
		cat := p.Supports[i].Category
		counts[cat]++
		p.Supports[i].Name = supportName(cat, counts[cat])
	}
	for i := range p.Mortgages {
		if strings.TrimSpace(p.Mortgages[i].Name) == "" {
			p.Mortgages[i].Name = mortgageName(i + 1)
		}
	}
}
