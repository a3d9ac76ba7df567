// Package importer carrega linhas de CSV em Dataset/Tag/Text numa única
// transação: ou todas as linhas entram, ou nenhuma.
package importer

import (
	"encoding/csv"
	"io"
	"strings"

	"corpora/models"

	"github.com/jinzhu/gorm"
)

// Colunas esperadas no cabeçalho. tags_name é opcional.
const (
	ColDataset = "dataset_name"
	ColTags    = "tags_name"
	ColText    = "text_content"
)

// Summary resume o que a importação gravou.
type Summary struct {
	Rows            int `json:"rows"`
	DatasetsCreated int `json:"datasets_created"`
	TagsCreated     int `json:"tags_created"`
	TextsCreated    int `json:"texts_created"`
	TextsUpdated    int `json:"texts_updated"`
}

// ImportCSV reconcilia as linhas do CSV com o banco:
//
//   - Dataset: get-or-create pelo nome.
//   - Tag: get-or-create por (nome, dataset). Nome já usado por tag de outro
//     dataset aborta com conflito, em vez de duplicar.
//   - Text: get-or-update por (conteúdo, dataset); o conjunto de tags é
//     sobrescrito com o da linha, não mesclado. Reimportar o mesmo arquivo é
//     idempotente.
//
// Qualquer erro desfaz tudo que a chamada tinha gravado.
func ImportCSV(db *gorm.DB, r io.Reader) (Summary, error) {
	var summary Summary

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return summary, validationErr(0, "arquivo vazio")
	}
	if err != nil {
		return summary, validationErr(0, "cabeçalho inválido: %v", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := cols[ColDataset]; !ok {
		return summary, validationErr(0, "coluna %s ausente", ColDataset)
	}
	if _, ok := cols[ColText]; !ok {
		return summary, validationErr(0, "coluna %s ausente", ColText)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return summary, &RowError{Kind: KindAborted, Reason: tx.Error.Error()}
	}

	// caches evitam reconsultar o que a própria importação criou
	datasets := map[string]*models.Dataset{}
	tags := map[tagKey]*models.Tag{}

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			tx.Rollback()
			return Summary{}, validationErr(row, "linha malformada: %v", err)
		}

		datasetName := strings.TrimSpace(field(record, cols[ColDataset]))
		textContent := strings.TrimSpace(field(record, cols[ColText]))
		tagsName := ""
		if i, ok := cols[ColTags]; ok {
			tagsName = field(record, i)
		}

		if datasetName == "" {
			tx.Rollback()
			return Summary{}, validationErr(row, "campo %s obrigatório", ColDataset)
		}
		if textContent == "" {
			tx.Rollback()
			return Summary{}, validationErr(row, "campo %s obrigatório", ColText)
		}

		dataset, created, err := getOrCreateDataset(tx, datasets, datasetName)
		if err != nil {
			tx.Rollback()
			return Summary{}, &RowError{Row: row, Kind: KindAborted, Reason: err.Error()}
		}
		if created {
			summary.DatasetsCreated++
		}

		rowTags := make([]models.Tag, 0)
		for _, name := range strings.Fields(tagsName) {
			tag, created, rerr := getOrCreateTag(tx, tags, dataset, name, row)
			if rerr != nil {
				tx.Rollback()
				return Summary{}, rerr
			}
			if created {
				summary.TagsCreated++
			}
			rowTags = append(rowTags, *tag)
		}

		created, err = upsertText(tx, dataset, textContent, rowTags)
		if err != nil {
			tx.Rollback()
			return Summary{}, &RowError{Row: row, Kind: KindAborted, Reason: err.Error()}
		}
		if created {
			summary.TextsCreated++
		} else {
			summary.TextsUpdated++
		}
		summary.Rows++
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return Summary{}, &RowError{Kind: KindAborted, Reason: err.Error()}
	}
	return summary, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func getOrCreateDataset(tx *gorm.DB, cache map[string]*models.Dataset, name string) (*models.Dataset, bool, error) {
	if dataset, ok := cache[name]; ok {
		return dataset, false, nil
	}

	var dataset models.Dataset
	err := tx.Where("name = ?", name).First(&dataset).Error
	if err == nil {
		cache[name] = &dataset
		return &dataset, false, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, false, err
	}

	dataset = models.Dataset{Name: name}
	if err := tx.Create(&dataset).Error; err != nil {
		return nil, false, err
	}
	cache[name] = &dataset
	return &dataset, true, nil
}

// tagKey escopa o cache por (dataset, nome), a mesma chave do índice único.
type tagKey struct {
	datasetID int64
	name      string
}

func getOrCreateTag(tx *gorm.DB, cache map[tagKey]*models.Tag, dataset *models.Dataset, name string, row int) (*models.Tag, bool, *RowError) {
	key := tagKey{datasetID: dataset.ID, name: name}
	if tag, ok := cache[key]; ok {
		return tag, false, nil
	}

	// primeiro procura a tag no dataset alvo: nomes só são únicos por dataset
	var tag models.Tag
	err := tx.Where("dataset_id = ? AND name = ?", dataset.ID, name).First(&tag).Error
	if err == nil {
		cache[key] = &tag
		return &tag, false, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, false, &RowError{Row: row, Kind: KindAborted, Reason: err.Error()}
	}

	// sem tag no dataset alvo: nome já usado por outro dataset é colisão,
	// rejeitada em vez de duplicada
	var other models.Tag
	err = tx.Where("name = ?", name).First(&other).Error
	if err == nil {
		return nil, false, conflictErr(row, "tag %s já pertence a outro dataset", name)
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, false, &RowError{Row: row, Kind: KindAborted, Reason: err.Error()}
	}

	tag = models.Tag{Name: name, DatasetID: dataset.ID}
	if err := tx.Create(&tag).Error; err != nil {
		return nil, false, &RowError{Row: row, Kind: KindAborted, Reason: err.Error()}
	}
	cache[key] = &tag
	return &tag, true, nil
}

func upsertText(tx *gorm.DB, dataset *models.Dataset, content string, tags []models.Tag) (bool, error) {
	var text models.Text
	err := tx.Where("dataset_id = ? AND content = ?", dataset.ID, content).First(&text).Error
	if err == nil {
		// sobrescreve o conjunto de tags com o da linha mais recente
		if err := tx.Model(&text).Association("Tags").Replace(tags).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return false, err
	}

	text = models.Text{Content: content, DatasetID: dataset.ID, Tags: tags}
	if err := tx.Create(&text).Error; err != nil {
		return false, err
	}
	return true, nil
}
