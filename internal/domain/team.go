package domain

// Team представляет команду или организацию (команду верхнего уровня)
type Team struct {
	ID             int
	Name           string
	Slug           *string
	ParentID       *int
	IsOrganization bool
}

// HasParent возвращает true если команда входит в организацию
func (t *Team) HasParent() bool {
	return t.ParentID != nil
}
