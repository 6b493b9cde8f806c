package domain

// Значения пагинации по умолчанию
const (
	DefaultSkip = 0
	DefaultTake = 250
)

// Pagination задает смещение и размер страницы
type Pagination struct {
	Skip int
	Take int
}

// WithDefaults подставляет значения по умолчанию для незаданных полей
func (p Pagination) WithDefaults() Pagination {
	if p.Skip < 0 {
		p.Skip = DefaultSkip
	}
	if p.Take <= 0 {
		p.Take = DefaultTake
	}
	return p
}
