package course

import "github.com/sazonlab/campus-bff/internal/domain"

// placeholder titles shown while the catalog is still being filled upstream
var placeholderTitles = []string{
	"Costeo de Recetas y Porciones",
	"Gestión de Inventarios para Cocina",
	"Ingeniería de Menú",
	"Marketing Gastronómico en Redes",
	"Operación de Cocina Eficiente",
	"Fidelización y Servicio al Cliente",
}

// FillPlaceholders pad the catalog up to min entries with unpublished
// "coming soon" cards so the SPA grid keeps its shape
func FillPlaceholders(courses []*domain.CourseModel, min int) []*domain.CourseModel {
	for i := len(courses); i < min; i++ {
		courses = append(courses, &domain.CourseModel{
			ID:          -int64(i + 1),
			Name:        placeholderTitles[i%len(placeholderTitles)],
			Description: "Disponible próximamente",
			Published:   false,
		})
	}
	return courses
}
