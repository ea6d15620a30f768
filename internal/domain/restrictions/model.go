package restrictions

type Category string

const (
	CategoryFood     Category = "alimento"
	CategoryActivity Category = "atividade"
)

func (c Category) Valid() bool {
	return c == CategoryFood || c == CategoryActivity
}

// Restriction es una indicación de dieta o actividad a respetar.
type Restriction struct {
	ID       string
	Category Category
	Title    string
	Details  string
}
