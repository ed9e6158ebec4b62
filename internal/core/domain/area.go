package domain

import "strings"

// Domain is one of the six fixed organisational categories used to scope
// visibility of documents, insights and alerts.
type Domain string

// Organisational domains.
const (
	DomainFinance    Domain = "Finance"
	DomainOperations Domain = "Operations"
	DomainHR         Domain = "HR"
	DomainSales      Domain = "Sales"
	DomainLegal      Domain = "Legal"
	DomainIT         Domain = "IT"
)

// AllDomains returns every domain in display order.
func AllDomains() []Domain {
	return []Domain{
		DomainFinance,
		DomainOperations,
		DomainHR,
		DomainSales,
		DomainLegal,
		DomainIT,
	}
}

// IsValid returns true if the domain is recognised.
func (d Domain) IsValid() bool {
	switch d {
	case DomainFinance, DomainOperations, DomainHR, DomainSales, DomainLegal, DomainIT:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d Domain) String() string {
	return string(d)
}

// Slug returns the lowercase form used in URLs and resource URIs.
func (d Domain) Slug() string {
	return strings.ToLower(string(d))
}

// ParseDomain resolves a domain name case-insensitively.
func ParseDomain(s string) (Domain, error) {
	s = strings.TrimSpace(s)
	for _, d := range AllDomains() {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", ErrUnknownDomain
}
