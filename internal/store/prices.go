package store

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// InsertPrices stores prices in one transaction. A price for an existing
// (stock, time) pair replaces the stored bar and indicator snapshot.
func (s *Store) InsertPrices(ctx context.Context, prices []types.StockPrice) (int, error) {
	if len(prices) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeStoreFailure, "failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, price := range prices {
		indicators := sql.NullString{}

		if len(price.Indicators) > 0 {
			encoded, err := encodeJSON(price.Indicators)
			if err != nil {
				return 0, err
			}

			indicators = sql.NullString{String: encoded, Valid: true}
		}

		_, err := s.sq.
			Insert("stock_prices").
			Columns("stock_id", "time", "open", "high", "low", "close", "volume", "indicators").
			Values(
				price.StockID, price.Bar.Time.UTC(), price.Bar.Open, price.Bar.High,
				price.Bar.Low, price.Bar.Close, price.Bar.Volume, indicators,
			).
			Suffix("ON CONFLICT (stock_id, time) DO UPDATE SET " +
				"open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low, close = EXCLUDED.close, " +
				"volume = EXCLUDED.volume, indicators = EXCLUDED.indicators").
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return 0, queryError(err, "failed to insert price of stock %d at %s", price.StockID, price.Bar.Time)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(errors.ErrCodeStoreFailure, "failed to commit prices", err)
	}

	s.logger.Debug("Stored prices", zap.Int("count", len(prices)), zap.Int64("stock_id", prices[0].StockID))

	return len(prices), nil
}

// ListPrices returns the prices of stockID in time order.
func (s *Store) ListPrices(ctx context.Context, stockID int64, skip, limit int) ([]types.StockPrice, error) {
	offset, count := pagination(skip, limit)

	rows, err := s.sq.
		Select("id", "stock_id", "time", "open", "high", "low", "close", "volume", "indicators").
		From("stock_prices").
		Where(squirrel.Eq{"stock_id": stockID}).
		OrderBy("time ASC").
		Offset(offset).
		Limit(count).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, queryError(err, "failed to list prices of stock %d", stockID)
	}
	defer rows.Close()

	prices := make([]types.StockPrice, 0)

	for rows.Next() {
		var (
			price      types.StockPrice
			indicators sql.NullString
		)

		err := rows.Scan(
			&price.ID, &price.StockID, &price.Bar.Time, &price.Bar.Open, &price.Bar.High,
			&price.Bar.Low, &price.Bar.Close, &price.Bar.Volume, &indicators,
		)
		if err != nil {
			return nil, queryError(err, "failed to scan price")
		}

		if indicators.Valid {
			price.Indicators = make(map[types.IndicatorKey]types.Value)
			if err := decodeJSON(indicators, &price.Indicators); err != nil {
				return nil, err
			}
		}

		prices = append(prices, price)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError(err, "failed to list prices of stock %d", stockID)
	}

	return prices, nil
}
