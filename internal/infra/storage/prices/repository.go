package prices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/consultation-booking/internal/domain"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
)

var (
	// ErrRead возвращается при ошибке чтения цен
	ErrRead = errors.New("prices.repository: failed to read prices")

	// ErrWrite возвращается при ошибке записи цен
	ErrWrite = errors.New("prices.repository: failed to write prices")
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Repository цены консультаций (документ consultationPrices)
type Repository struct {
	store  documents.Store
	logger Logger
}

func NewRepository(store documents.Store, logger Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

// Get возвращает сохраненные цены; пустой результат, если их нет или документ поврежден
func (r *Repository) Get(ctx context.Context) (domain.Prices, error) {
	doc, err := r.store.Read(ctx, domain.KeyPrices)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return domain.Prices{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	var prices domain.Prices
	if err := json.Unmarshal(doc.Body, &prices); err != nil {
		r.logger.Warn("prices.Get: corrupt %s record treated as empty: %v", domain.KeyPrices, err)
		return domain.Prices{}, nil
	}
	if prices == nil {
		prices = domain.Prices{}
	}
	return prices, nil
}

// Save перезаписывает цены целиком
func (r *Repository) Save(ctx context.Context, prices domain.Prices) error {
	body, err := json.Marshal(prices)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrWrite, err)
	}
	if _, err := r.store.Write(ctx, domain.KeyPrices, body, documents.AnyVersion); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
