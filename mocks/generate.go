package mocks

//go:generate mockgen -destination=./mock_marketdata.go -package=mocks github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/marketdata BarFetcher,HeadlineFetcher,NewsFetcher,OverviewFetcher,QuoteFetcher
//go:generate mockgen -destination=./mock_llm.go -package=mocks github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/llm TextGenerator
//go:generate mockgen -destination=./mock_cache.go -package=mocks github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/cache Cache
//go:generate mockgen -destination=./mock_repository.go -package=mocks github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/service Repository
//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/indicator Indicator
