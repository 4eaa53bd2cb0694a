package ordergen

import (
	"errors"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

const noRecordsMessage = "No records match criteria"

// pickOne выполняет запрос, возвращающий одну непредсказуемо выбранную запись.
// Пустой набор кандидатов превращается в NotFoundError с сообщением msg
// (по умолчанию "No records match criteria"); прочие ошибки не переклассифицируются.
func pickOne[T any](query func() (T, error), msg string) (T, error) {
	record, err := query()
	if err != nil {
		var zero T
		if errors.Is(err, domain.ErrNotFound) {
			if msg == "" {
				msg = noRecordsMessage
			}
			return zero, domain.NotFoundError("%s", msg)
		}
		return zero, err
	}
	return record, nil
}
