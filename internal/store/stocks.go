package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

var stockColumns = []string{
	"id", "symbol", "name", "market_cap", "sector", "industry",
	"pe_ratio", "beta", "dividend_yield", "created_at", "updated_at",
}

// CreateStock stores a new stock. Symbols are unique.
func (s *Store) CreateStock(ctx context.Context, stock types.Stock) (types.Stock, error) {
	stock.Symbol = strings.ToUpper(strings.TrimSpace(stock.Symbol))
	if stock.Symbol == "" {
		return types.Stock{}, errors.New(errors.ErrCodeInvalidSymbol, "stock symbol is required")
	}

	now := s.now()
	stock.CreatedAt = now
	stock.UpdatedAt = now

	err := s.sq.
		Insert("stocks").
		Columns(stockColumns[1:]...).
		Values(
			stock.Symbol, stock.Name, nullFloat(stock.MarketCap), stock.Sector, stock.Industry,
			nullFloat(stock.PERatio), nullFloat(stock.Beta), nullFloat(stock.DividendYield),
			stock.CreatedAt, stock.UpdatedAt,
		).
		Suffix("RETURNING id").
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&stock.ID)
	if err != nil {
		return types.Stock{}, queryError(err, "failed to create stock %s", stock.Symbol)
	}

	return stock, nil
}

// GetStock returns the stock with id.
func (s *Store) GetStock(ctx context.Context, id int64) (types.Stock, error) {
	return s.getStock(ctx, squirrel.Eq{"id": id}, "stock %d not found", id)
}

// GetStockBySymbol returns the stock with symbol.
func (s *Store) GetStockBySymbol(ctx context.Context, symbol string) (types.Stock, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	return s.getStock(ctx, squirrel.Eq{"symbol": symbol}, "stock %s not found", symbol)
}

func (s *Store) getStock(ctx context.Context, where squirrel.Eq, format string, args ...any) (types.Stock, error) {
	row := s.sq.
		Select(stockColumns...).
		From("stocks").
		Where(where).
		RunWith(s.db).
		QueryRowContext(ctx)

	stock, err := scanStock(row)
	if err != nil {
		return types.Stock{}, queryError(err, format, args...)
	}

	return stock, nil
}

// ListStocks returns stocks ordered by symbol.
func (s *Store) ListStocks(ctx context.Context, skip, limit int) ([]types.Stock, error) {
	offset, count := pagination(skip, limit)

	rows, err := s.sq.
		Select(stockColumns...).
		From("stocks").
		OrderBy("symbol ASC").
		Offset(offset).
		Limit(count).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, queryError(err, "failed to list stocks")
	}
	defer rows.Close()

	stocks := make([]types.Stock, 0)

	for rows.Next() {
		stock, err := scanStock(rows)
		if err != nil {
			return nil, queryError(err, "failed to scan stock")
		}

		stocks = append(stocks, stock)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError(err, "failed to list stocks")
	}

	return stocks, nil
}

// UpdateStock replaces the attributes of the stock with stock.ID.
func (s *Store) UpdateStock(ctx context.Context, stock types.Stock) (types.Stock, error) {
	result, err := s.sq.
		Update("stocks").
		SetMap(map[string]any{
			"name":           stock.Name,
			"market_cap":     nullFloat(stock.MarketCap),
			"sector":         stock.Sector,
			"industry":       stock.Industry,
			"pe_ratio":       nullFloat(stock.PERatio),
			"beta":           nullFloat(stock.Beta),
			"dividend_yield": nullFloat(stock.DividendYield),
			"updated_at":     s.now(),
		}).
		Where(squirrel.Eq{"id": stock.ID}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return types.Stock{}, queryError(err, "failed to update stock %d", stock.ID)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return types.Stock{}, errors.Newf(errors.ErrCodeDataNotFound, "stock %d not found", stock.ID)
	}

	return s.GetStock(ctx, stock.ID)
}

// UpsertStock creates the stock or refreshes the existing row with the same symbol.
func (s *Store) UpsertStock(ctx context.Context, stock types.Stock) (types.Stock, error) {
	existing, err := s.GetStockBySymbol(ctx, stock.Symbol)

	switch {
	case err == nil:
		stock.ID = existing.ID

		return s.UpdateStock(ctx, stock)
	case errors.HasCode(err, errors.ErrCodeDataNotFound):
		return s.CreateStock(ctx, stock)
	default:
		return types.Stock{}, err
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStock(row rowScanner) (types.Stock, error) {
	var (
		stock                              types.Stock
		marketCap, peRatio, beta, dividend sql.NullFloat64
		sector, industry                   sql.NullString
	)

	err := row.Scan(
		&stock.ID, &stock.Symbol, &stock.Name, &marketCap, &sector, &industry,
		&peRatio, &beta, &dividend, &stock.CreatedAt, &stock.UpdatedAt,
	)
	if err != nil {
		return types.Stock{}, err
	}

	stock.MarketCap = optionalFloat(marketCap)
	stock.Sector = sector.String
	stock.Industry = industry.String
	stock.PERatio = optionalFloat(peRatio)
	stock.Beta = optionalFloat(beta)
	stock.DividendYield = optionalFloat(dividend)

	return stock, nil
}
