package marketdata

import (
	"context"

	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// MergedOverviewFetcher asks every source in order and fills the unknown
// attributes of the first answer from the later ones.
type MergedOverviewFetcher struct {
	sources []OverviewFetcher
	logger  *logger.Logger
}

// NewMergedOverviewFetcher creates a fetcher over sources. Nil sources are skipped.
func NewMergedOverviewFetcher(log *logger.Logger, sources ...OverviewFetcher) *MergedOverviewFetcher {
	if log == nil {
		log = logger.NewNop()
	}

	kept := make([]OverviewFetcher, 0, len(sources))

	for _, s := range sources {
		if s != nil {
			kept = append(kept, s)
		}
	}

	return &MergedOverviewFetcher{sources: kept, logger: log}
}

// FetchOverview implements OverviewFetcher. It fails only when every source fails;
// the error of the first source is returned in that case.
func (f *MergedOverviewFetcher) FetchOverview(ctx context.Context, symbol string) (types.CompanyOverview, error) {
	if len(f.sources) == 0 {
		return types.CompanyOverview{}, errors.New(errors.ErrCodeInvalidConfiguration, "no overview source configured")
	}

	var (
		merged   types.CompanyOverview
		found    bool
		firstErr error
	)

	for _, source := range f.sources {
		overview, err := source.FetchOverview(ctx, symbol)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}

			f.logger.Debug("Overview source failed", zap.String("symbol", symbol), zap.Error(err))

			continue
		}

		if !found {
			merged = overview
			found = true

			continue
		}

		merged = merged.Merge(overview)
	}

	if !found {
		return types.CompanyOverview{}, firstErr
	}

	return merged, nil
}
