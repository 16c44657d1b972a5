package feed

import "github.com/aldeia/rankboard/internal/domain/model"

// SampleRows returns the built-in development dataset used when the
// upstream webhook is unreachable and nothing real has loaded yet.
func SampleRows() []model.Raw {
	return []model.Raw{
		{
			"Nome":           "João Silva",
			"Valor Depósito": "1500,00",
			"Data":           "2025-07-15",
			"Ativação?":      "Ativação",
		},
		{
			"Nome":           "Maria Santos",
			"Valor Depósito": "2300,50",
			"Data":           "2025-07-20",
			"Ativação?":      "Ativação",
		},
		{
			"Nome":           "Pedro Costa",
			"Valor Depósito": "1800,75",
			"Data":           "2025-07-25",
			"Ativação?":      "Não",
		},
		{
			"Nome":           "Ana Oliveira",
			"Valor Depósito": "3200,00",
			"Data":           "2025-08-01",
			"Ativação?":      "Ativação",
		},
		{
			"Nome":           "Carlos Mendes",
			"Valor Depósito": "950,25",
			"Data":           "2025-08-05",
			"Ativação?":      "Não",
		},
	}
}
