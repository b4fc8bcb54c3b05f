package app

import "jm_store_backend/internal/models"

// FallbackProducts is the bundled catalog shown when the backend is
// unreachable or returns nothing, so the storefront is never empty.
func FallbackProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "Vestido Midi Floral Grace",
			Price:       189.90,
			Description: "Tecido chiffon leve com estampa floral modesta, perfeito para o culto de domingo.",
			Category:    models.CategoryDresses,
			ImageURL:    "https://picsum.photos/400/600?random=1",
			Sizes:       []string{"P", "M", "G", "GG"},
		},
		{
			ID:          2,
			Name:        "Blazer Clássico Elegante",
			Price:       229.90,
			Description: "Blazer de alfaiataria em crepe premium. Adiciona sofisticação a qualquer look.",
			Category:    models.CategoryCoats,
			ImageURL:    "https://picsum.photos/400/600?random=2",
			Sizes:       []string{"M", "G", "GG"},
		},
		{
			ID:          3,
			Name:        "Saia Plissada Serenity",
			Price:       139.90,
			Description: "Uma saia plissada atemporal com caimento perfeito. Comprimento modesto e cós confortável.",
			Category:    models.CategorySkirts,
			ImageURL:    "https://picsum.photos/400/600?random=3",
			Sizes:       []string{"P", "M", "G"},
		},
		{
			ID:          4,
			Name:        "Blusa de Seda Modesta",
			Price:       119.90,
			Description: "Blusa de seda com gola alta e brilho suave. Perfeita para sobreposições.",
			Category:    models.CategoryBlouses,
			ImageURL:    "https://picsum.photos/400/600?random=4",
			Sizes:       []string{"P", "M", "G", "GG", "XG"},
		},
	}
}
