package catalog

// Purpose es la finalidad del medicamento (valores en portugués, como los
// muestra la app).
type Purpose string

const (
	PurposePain        Purpose = "dor"
	PurposeNausea      Purpose = "nausea"
	PurposeAntibiotic  Purpose = "antibiotico"
	PurposeDiarrhea    Purpose = "diarreia"
	PurposeStomach     Purpose = "estomago"
	PurposeHeart       Purpose = "coração"
	PurposeCirculation Purpose = "circulação"
	PurposeOther       Purpose = "outro"
)

var Purposes = []Purpose{
	PurposePain,
	PurposeNausea,
	PurposeAntibiotic,
	PurposeDiarrhea,
	PurposeStomach,
	PurposeHeart,
	PurposeCirculation,
	PurposeOther,
}

func IsValidPurpose(p Purpose) bool {
	for _, v := range Purposes {
		if v == p {
			return true
		}
	}
	return false
}

// Medication es un ítem del catálogo de medicamentos de la casa.
type Medication struct {
	ID      string
	Name    string
	Purpose Purpose
}
