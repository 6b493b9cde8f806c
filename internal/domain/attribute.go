package domain

// AttributeQueryOperator задает, как набор опций атрибутов сравнивается
// с опциями, назначенными участнику команды
type AttributeQueryOperator string

// Поддерживаемые операторы
const (
	AttributeOperatorAnd  AttributeQueryOperator = "AND"  // назначены все опции
	AttributeOperatorOr   AttributeQueryOperator = "OR"   // назначена хотя бы одна
	AttributeOperatorNone AttributeQueryOperator = "NONE" // не назначена ни одна
)

// Valid возвращает true для известного оператора
func (o AttributeQueryOperator) Valid() bool {
	switch o {
	case AttributeOperatorAnd, AttributeOperatorOr, AttributeOperatorNone:
		return true
	default:
		return false
	}
}

// AttributeFilters фильтр пользователей команды по назначенным опциям атрибутов
type AttributeFilters struct {
	AssignedOptionIDs []string
	Operator          AttributeQueryOperator
}

// HasOptions возвращает true если задан хотя бы один идентификатор опции
func (f *AttributeFilters) HasOptions() bool {
	return f != nil && len(f.AssignedOptionIDs) > 0
}
