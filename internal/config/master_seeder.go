package config

import (
	"log"

	"gorm.io/gorm"

	"sena-biblioteca/internal/adapters/persistence/models"
)

// categoryGroups is the initial catalog taxonomy, grouped by theme
var categoryGroups = map[string][]string{
	"Ficción": {
		"Novela contemporánea",
		"Ficción histórica",
		"Ciencia ficción",
		"Fantasía",
		"Misterio / Suspenso",
		"Terror / Horror",
		"Romance",
		"Aventura",
		"Ficción distópica",
		"Realismo mágico",
	},
	"No ficción": {
		"Biografía / Autobiografía",
		"Historia",
		"Ciencia",
		"Psicología",
		"Filosofía",
		"Política",
		"Sociología",
		"Economía",
		"Autoayuda / Desarrollo personal",
		"Ensayo",
	},
	"Infantil y juvenil": {
		"Cuentos infantiles",
		"Literatura juvenil",
		"Libros ilustrados",
		"Fábulas y leyendas",
		"Educativos para niños",
	},
	"Académico / Técnico": {
		"Matemáticas",
		"Física",
		"Química",
		"Informática / Programación",
		"Medicina / Salud",
		"Ingeniería",
		"Derecho",
		"Educación",
		"Pedagogía",
	},
	"Cultura y sociedad": {
		"Religión / Espiritualidad",
		"Antropología",
		"Mitología",
		"Estudios de género",
		"Ecología / Medio ambiente",
	},
	"Arte y creatividad": {
		"Arte / Historia del arte",
		"Música",
		"Fotografía",
		"Diseño gráfico",
		"Arquitectura",
		"Cine / Teatro",
		"Moda",
	},
	"Otros intereses": {
		"Cocina / Gastronomía",
		"Viajes / Guías turísticas",
		"Deportes",
		"Jardinería",
		"Manualidades",
		"Negocios / Emprendimiento",
	},
}

// SeedCategories seeds the category master data. Skipped when the table
// already has rows.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	total := 0
	for group, names := range categoryGroups {
		for _, name := range names {
			category := &models.Category{
				Name:  name,
				Group: group,
			}
			if err := db.Create(category).Error; err != nil {
				return err
			}
			total++
		}
	}

	log.Printf("✅ Category master data seeded (%d categories)", total)
	return nil
}
