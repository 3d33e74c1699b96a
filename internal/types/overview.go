package types

import "github.com/moznion/go-optional"

// Unknown marks a company attribute the upstream provider did not supply.
const Unknown = "unknown"

// CompanyOverview holds static company attributes.
// Text fields default to Unknown and numeric fields to None when missing.
type CompanyOverview struct {
	Symbol        string                   `json:"symbol"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	Exchange      string                   `json:"exchange"`
	Currency      string                   `json:"currency"`
	Country       string                   `json:"country"`
	Sector        string                   `json:"sector"`
	Industry      string                   `json:"industry"`
	MarketCap     optional.Option[float64] `json:"market_cap"`
	PERatio       optional.Option[float64] `json:"pe_ratio"`
	EPS           optional.Option[float64] `json:"eps"`
	DividendYield optional.Option[float64] `json:"dividend_yield"`
	Beta          optional.Option[float64] `json:"beta"`
	High52Week    optional.Option[float64] `json:"high_52_week"`
	Low52Week     optional.Option[float64] `json:"low_52_week"`
	Source        string                   `json:"source"`
}

// NewCompanyOverview creates an overview with every attribute unknown.
func NewCompanyOverview(symbol string) CompanyOverview {
	return CompanyOverview{
		Symbol:        symbol,
		Name:          Unknown,
		Description:   Unknown,
		Exchange:      Unknown,
		Currency:      Unknown,
		Country:       Unknown,
		Sector:        Unknown,
		Industry:      Unknown,
		MarketCap:     optional.None[float64](),
		PERatio:       optional.None[float64](),
		EPS:           optional.None[float64](),
		DividendYield: optional.None[float64](),
		Beta:          optional.None[float64](),
		High52Week:    optional.None[float64](),
		Low52Week:     optional.None[float64](),
		Source:        Unknown,
	}
}

// Normalize replaces empty text attributes with Unknown.
func (o CompanyOverview) Normalize() CompanyOverview {
	for _, field := range []*string{&o.Name, &o.Description, &o.Exchange, &o.Currency, &o.Country, &o.Sector, &o.Industry, &o.Source} {
		if *field == "" || *field == "None" || *field == "-" {
			*field = Unknown
		}
	}

	return o
}

// Merge fills unknown attributes of o from fallback.
func (o CompanyOverview) Merge(fallback CompanyOverview) CompanyOverview {
	pick := func(primary, secondary string) string {
		if primary == "" || primary == Unknown {
			return secondary
		}

		return primary
	}

	pickNum := func(primary, secondary optional.Option[float64]) optional.Option[float64] {
		if primary.IsSome() {
			return primary
		}

		return secondary
	}

	o.Name = pick(o.Name, fallback.Name)
	o.Description = pick(o.Description, fallback.Description)
	o.Exchange = pick(o.Exchange, fallback.Exchange)
	o.Currency = pick(o.Currency, fallback.Currency)
	o.Country = pick(o.Country, fallback.Country)
	o.Sector = pick(o.Sector, fallback.Sector)
	o.Industry = pick(o.Industry, fallback.Industry)
	o.MarketCap = pickNum(o.MarketCap, fallback.MarketCap)
	o.PERatio = pickNum(o.PERatio, fallback.PERatio)
	o.EPS = pickNum(o.EPS, fallback.EPS)
	o.DividendYield = pickNum(o.DividendYield, fallback.DividendYield)
	o.Beta = pickNum(o.Beta, fallback.Beta)
	o.High52Week = pickNum(o.High52Week, fallback.High52Week)
	o.Low52Week = pickNum(o.Low52Week, fallback.Low52Week)

	return o.Normalize()
}
