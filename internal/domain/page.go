package domain

const (
	// DefaultPageLimit совпадает с размером страницы по умолчанию у HTTP API.
	DefaultPageLimit = 10
	// MaxPageLimit ограничивает размер одной страницы.
	MaxPageLimit = 100
)

// Page задаёт offset-пагинацию: пропустить Skip записей и вернуть не более Limit.
// Стабильность выборки при конкурентных вставках/удалениях не гарантируется.
type Page struct {
	Skip  int
	Limit int
}

// DefaultPage возвращает первую страницу стандартного размера.
func DefaultPage() Page {
	return Page{Skip: 0, Limit: DefaultPageLimit}
}

// Validate проверяет границы страницы.
func (p Page) Validate() []error {
	var errs []error

	if p.Skip < 0 {
		errs = append(errs, ErrPageSkipNegative)
	}
	if p.Limit <= 0 || p.Limit > MaxPageLimit {
		errs = append(errs, ErrPageLimitInvalid)
	}

	return errs
}

// Bounds возвращает полуинтервал [from, to) для набора из total записей.
func (p Page) Bounds(total int) (int, int) {
	if p.Skip >= total {
		return total, total
	}
	to := p.Skip + p.Limit
	if to > total || to < p.Skip {
		to = total
	}
	return p.Skip, to
}
