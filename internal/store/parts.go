// internal/store/parts.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	cerrors "torqueup-chat/internal/common/errors"
	"torqueup-chat/internal/common/logger"
	"torqueup-chat/internal/models"
)

const partsByTitleQuery = `
	SELECT id, title, price, condition, image_url, compatible_cars, seller_id
	FROM approved_parts
	WHERE title ILIKE '%' || $1 || '%'
	ORDER BY created_at DESC
	LIMIT $2`

// PartsStore looks up approved marketplace parts by title substring.
type PartsStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPartsStore(db *sql.DB, log logger.Logger) *PartsStore {
	return &PartsStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "parts-store"}),
	}
}

// SearchByTitle returns up to limit parts whose title contains the given
// substring, case-insensitively. Seller is left unresolved; callers join
// usernames via ProfileStore.
func (s *PartsStore) SearchByTitle(ctx context.Context, titleSubstring string, limit int) ([]models.Part, error) {
	rows, err := s.db.QueryContext(ctx, partsByTitleQuery, titleSubstring, limit)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, cerrors.NewQueryTimeoutError("parts-by-title")
		}
		return nil, cerrors.NewPartsLookupFailedError(err)
	}
	defer rows.Close()

	var parts []models.Part
	for rows.Next() {
		var (
			p        models.Part
			imageURL sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Condition, &imageURL,
			pq.Array(&p.CompatibleCars), &p.SellerID); err != nil {
			return nil, cerrors.NewPartsLookupFailedError(fmt.Errorf("scan part row: %w", err))
		}
		p.ImageURL = imageURL.String
		parts = append(parts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, cerrors.NewPartsLookupFailedError(err)
	}

	return parts, nil
}
