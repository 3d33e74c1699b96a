package store

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

var newsColumns = []string{
	"id", "title", "content", "source", "url", "published_at", "sentiment_score", "stock_id", "related_stocks",
}

// CreateNews stores an article.
func (s *Store) CreateNews(ctx context.Context, news types.StoredNews) (types.StoredNews, error) {
	if news.Title == "" {
		return types.StoredNews{}, errors.New(errors.ErrCodeMissingParameter, "news title is required")
	}

	if news.RelatedStocks == nil {
		news.RelatedStocks = []string{}
	}

	related, err := encodeJSON(news.RelatedStocks)
	if err != nil {
		return types.StoredNews{}, err
	}

	err = s.sq.
		Insert("news").
		Columns(newsColumns[1:]...).
		Values(
			news.Title, news.Content, news.Source, news.URL, news.PublishedAt.UTC(),
			nullFloat(news.SentimentScore), nullInt(news.StockID), related,
		).
		Suffix("RETURNING id").
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&news.ID)
	if err != nil {
		return types.StoredNews{}, queryError(err, "failed to create news %q", news.Title)
	}

	return news, nil
}

// GetNews returns the article with id.
func (s *Store) GetNews(ctx context.Context, id int64) (types.StoredNews, error) {
	row := s.sq.
		Select(newsColumns...).
		From("news").
		Where(squirrel.Eq{"id": id}).
		RunWith(s.db).
		QueryRowContext(ctx)

	news, err := scanNews(row)
	if err != nil {
		return types.StoredNews{}, queryError(err, "news %d not found", id)
	}

	return news, nil
}

// ListNews returns articles, newest first.
func (s *Store) ListNews(ctx context.Context, skip, limit int) ([]types.StoredNews, error) {
	offset, count := pagination(skip, limit)

	rows, err := s.sq.
		Select(newsColumns...).
		From("news").
		OrderBy("published_at DESC", "id DESC").
		Offset(offset).
		Limit(count).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, queryError(err, "failed to list news")
	}
	defer rows.Close()

	items := make([]types.StoredNews, 0)

	for rows.Next() {
		news, err := scanNews(rows)
		if err != nil {
			return nil, queryError(err, "failed to scan news")
		}

		items = append(items, news)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError(err, "failed to list news")
	}

	return items, nil
}

// UpdateNews replaces the article with news.ID.
func (s *Store) UpdateNews(ctx context.Context, news types.StoredNews) (types.StoredNews, error) {
	if news.RelatedStocks == nil {
		news.RelatedStocks = []string{}
	}

	related, err := encodeJSON(news.RelatedStocks)
	if err != nil {
		return types.StoredNews{}, err
	}

	result, err := s.sq.
		Update("news").
		SetMap(map[string]any{
			"title":           news.Title,
			"content":         news.Content,
			"source":          news.Source,
			"url":             news.URL,
			"published_at":    news.PublishedAt.UTC(),
			"sentiment_score": nullFloat(news.SentimentScore),
			"stock_id":        nullInt(news.StockID),
			"related_stocks":  related,
		}).
		Where(squirrel.Eq{"id": news.ID}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return types.StoredNews{}, queryError(err, "failed to update news %d", news.ID)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return types.StoredNews{}, errors.Newf(errors.ErrCodeDataNotFound, "news %d not found", news.ID)
	}

	return s.GetNews(ctx, news.ID)
}

func scanNews(row rowScanner) (types.StoredNews, error) {
	var (
		news                 types.StoredNews
		content, source, url sql.NullString
		published            sql.NullTime
		score                sql.NullFloat64
		stockID              sql.NullInt64
		related              sql.NullString
	)

	err := row.Scan(&news.ID, &news.Title, &content, &source, &url, &published, &score, &stockID, &related)
	if err != nil {
		return types.StoredNews{}, err
	}

	news.Content = content.String
	news.Source = source.String
	news.URL = url.String
	news.PublishedAt = published.Time
	news.SentimentScore = optionalFloat(score)
	news.StockID = optionalInt(stockID)
	news.RelatedStocks = []string{}

	if err := decodeJSON(related, &news.RelatedStocks); err != nil {
		return types.StoredNews{}, err
	}

	return news, nil
}
