// Package stats implementa as consultas agregadas sobre um dataset:
// contagem de textos por tag e busca por substring.
package stats

import (
	"sort"
	"strings"

	"corpora/models"

	"github.com/jinzhu/gorm"
)

// CountTextsByTag conta, por nome de tag, quantos textos do dataset carregam
// a tag. Tags inativas ficam de fora. Os nomes retornados vêm em ordem
// lexicográfica ascendente.
func CountTextsByTag(db *gorm.DB, datasetID int64) (map[string]int, []string, error) {
	var texts []models.Text
	if err := db.Where("dataset_id = ?", datasetID).Preload("Tags").
		Find(&texts).Error; err != nil {
		return nil, nil, err
	}

	counts := map[string]int{}
	for _, text := range texts {
		for _, tag := range text.Tags {
			if !tag.Active() {
				continue
			}
			counts[tag.Name]++
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	return counts, names, nil
}

// SearchTexts devolve os textos do dataset cujo conteúdo contém a substring,
// sem diferenciar maiúsculas/minúsculas, na ordem natural de inserção.
func SearchTexts(db *gorm.DB, datasetID int64, query string) ([]models.Text, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var texts []models.Text
	if err := db.Where("dataset_id = ? AND LOWER(content) LIKE ?", datasetID, pattern).
		Preload("Tags").Order("id asc").Find(&texts).Error; err != nil {
		return nil, err
	}
	return texts, nil
}
